package gapsync

// CopyAction describes one file copied during a sweep.
type CopyAction struct {
	Source string
	Dest   string
	Size   int64
}

// FileFailure describes a file that could not be copied and was skipped
// under the skip-and-continue error policy.
type FileFailure struct {
	Path string
	Err  error
}

// Report accumulates the observable outcome of a Sync call.
// On error it still describes the work completed before the failure.
type Report struct {
	Copies   []CopyAction
	Failures []FileFailure
}
