package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gapsync-go/internal/app"
	"gapsync-go/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Sync", "ResizeCoverArt").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "gapsync",
	Short: "Gap-filler directory reconciler",
	Long: `gapsync reconciles two directory trees by copying files present in one
and absent in the other, in both directions. It never deletes and never
overwrites existing files.`,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new host ID
		hostID := uuid.New().String()

		// Create config with defaults
		cfg := config.NewConfig(hostID, defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:   %s\n", cfg.HostID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("On Error:  %s\n", cfg.Sync.OnError)
		if len(cfg.Pairs) == 0 {
			fmt.Println("Pairs:     (none configured)")
		}
		for _, p := range cfg.Pairs {
			name := p.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("Pair %s:\n  left:  %s\n  right: %s\n", name, p.Left, p.Right)
		}
		return nil
	},
}

// sync command
var syncCmd = &cobra.Command{
	Use:   "sync [LEFT RIGHT]",
	Short: "Copy files missing on either side of a directory pair",
	Long: `With LEFT and RIGHT, reconciles that pair. Without arguments,
reconciles every pair configured in the config file.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expects either no arguments or LEFT and RIGHT")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Sync")
		if err != nil {
			return err
		}
		defer a.Close()

		onCopy := func(src, dst string) {
			fmt.Printf("Copied: %s -> %s\n", src, dst)
		}

		total := 0
		failed := 0

		if len(args) == 2 {
			a.SetOperationParameters(fmt.Sprintf("%s -> %s", args[0], args[1]))
			report, err := a.SyncPair(args[0], args[1], "", nil, onCopy)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			total = len(report.Copies)
			failed = len(report.Failures)
		} else {
			pairs := a.Config().Pairs
			if len(pairs) == 0 {
				return fmt.Errorf("no pairs configured; pass LEFT and RIGHT or add [[pairs]] to the config")
			}
			names := make([]string, 0, len(pairs))
			for _, p := range pairs {
				if p.Name != "" {
					names = append(names, p.Name)
				} else {
					names = append(names, fmt.Sprintf("%s -> %s", p.Left, p.Right))
				}
			}
			a.SetOperationParameters(strings.Join(names, ", "))
			for _, p := range pairs {
				report, err := a.SyncPair(p.Left, p.Right, p.Name, p.Ignore, onCopy)
				if report != nil {
					total += len(report.Copies)
					failed += len(report.Failures)
				}
				if err != nil {
					return fmt.Errorf("syncing pair %q: %w", p.Name, err)
				}
			}
		}

		fmt.Println("Sync complete.")
		fmt.Printf("Copied %d file(s)\n", total)
		if failed > 0 {
			fmt.Printf("Skipped %d file(s) after errors (see log)\n", failed)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "View sync run history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			copies, err := a.RunCopies(runID)
			if err != nil {
				return err
			}
			if len(copies) == 0 {
				fmt.Println("No copies recorded for this run.")
				return nil
			}
			for _, c := range copies {
				fmt.Printf("%s -> %s  (%d bytes)\n", c.SourcePath, c.DestPath, c.Size)
			}
			return nil
		}

		runs, err := a.History(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No sync runs recorded.")
			return nil
		}

		for _, run := range runs {
			duration := ""
			if run.FinishedAt.Valid {
				d := run.FinishedAt.Time.Sub(run.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-16s  %s  %-8s  %d file(s)  %s\n",
				run.ID,
				run.Operation,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.Status,
				run.FilesCopied,
				duration,
			)
		}
		return nil
	},
}

// media command
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Media library maintenance tools",
}

var mediaFixNamesCmd = &cobra.Command{
	Use:   "fix-names DIR",
	Short: "Rename VLC snapshot captures to their video's name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("FixSnapshotNames")
		if err != nil {
			return err
		}
		defer a.Close()

		renames, err := a.FixSnapshotNames(args[0])
		if err != nil {
			return fmt.Errorf("fixing names: %w", err)
		}

		for _, r := range renames {
			fmt.Printf("Renamed: %s -> %s\n", r.OldName, r.NewName)
		}
		fmt.Printf("Renamed %d file(s)\n", len(renames))
		return nil
	},
}

var mediaResizeCmd = &cobra.Command{
	Use:   "resize DIR",
	Short: "Resize images to cover-art dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		a, err := newApp("ResizeCoverArt")
		if err != nil {
			return err
		}
		defer a.Close()

		saved, err := a.ResizeCoverArt(args[0], width, height)
		if err != nil {
			return fmt.Errorf("resizing: %w", err)
		}

		for _, path := range saved {
			fmt.Printf("Saved: %s\n", path)
		}
		fmt.Printf("Saved %d image(s)\n", len(saved))
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// media subcommands
	mediaCmd.AddCommand(mediaFixNamesCmd)
	mediaCmd.AddCommand(mediaResizeCmd)
	mediaResizeCmd.Flags().Int("width", 0, "Target width (defaults to config)")
	mediaResizeCmd.Flags().Int("height", 0, "Target height (defaults to config)")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
	rootCmd.AddCommand(mediaCmd)
}
