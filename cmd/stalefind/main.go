package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stalefind/stalefind/internal/actionlog"
	"github.com/stalefind/stalefind/internal/config"
	"github.com/stalefind/stalefind/internal/platform"
	"github.com/stalefind/stalefind/internal/progress"
	"github.com/stalefind/stalefind/internal/reporter"
	"github.com/stalefind/stalefind/internal/results"
	"github.com/stalefind/stalefind/internal/scan"
	"github.com/stalefind/stalefind/internal/security"
	"github.com/stalefind/stalefind/internal/trash"
	"github.com/stalefind/stalefind/internal/ui/models"
	"github.com/stalefind/stalefind/pkg/utils"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	verbose     bool
	roots       []string
	minAgeDays  int
	minSizeStr  string
	excludes    []string
	ignoreDev   bool
	noIgnoreDev bool
	outputFmt   string
	outputFile  string
	interactive bool
	force       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stalefind",
	Short: "Find large, long-unused files",
	Long: `Stalefind scans your folders for files that have not been used in a long
time and are worth reviewing: old downloads, forgotten archives, large
videos. It never touches system paths, app bundles, or hidden files, and
it only ever moves files to the trash.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for stale files",
	Long:  `Scans the configured roots and reports stale files without making any changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanCfg, appCfg, err := buildScanConfig(cmd)
		if err != nil {
			return err
		}

		if interactive {
			return runInteractive(scanCfg, appCfg)
		}

		items, err := runScan(scanCfg)
		if err != nil {
			return err
		}

		format := parseFormat(outputFmt, appCfg)
		if outputFile != "" {
			if err := reporter.SaveToFile(items, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		rptr := reporter.New(os.Stdout, format, appCfg.Output.Color)
		if err := rptr.Report(items); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Scan and move stale files to the trash",
	Long:  `Scans the configured roots, shows what was found, and moves it to the trash after confirmation. Nothing is ever deleted outright.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanCfg, appCfg, err := buildScanConfig(cmd)
		if err != nil {
			return err
		}

		items, err := runScan(scanCfg)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("\n✨ No stale files found.")
			return nil
		}

		rptr := reporter.New(os.Stdout, reporter.FormatSummary, appCfg.Output.Color)
		if err := rptr.Report(items); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if !force {
			fmt.Print("\nMove these files to the trash? (y/N): ")
			var response string
			fmt.Scanln(&response)
			if response != "y" && response != "Y" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		mover, err := trash.NewMover()
		if err != nil {
			return fmt.Errorf("trash unavailable: %w", err)
		}

		paths := make([]string, 0, len(items))
		for _, item := range items {
			paths = append(paths, item.Path)
		}

		res := mover.Move(paths)

		if logger, err := actionlog.NewLogger(); err == nil && len(res.Trashed) > 0 {
			if err := logger.Record("trash", res.Trashed, res.Freed); err != nil && verbose {
				fmt.Fprintf(os.Stderr, "warning: failed to write action log: %v\n", err)
			}
		}

		fmt.Printf("\n✅ Moved %d files to trash (%s freed)\n",
			len(res.Trashed), utils.FormatBytes(res.Freed))
		if len(res.Failed) > 0 {
			fmt.Printf("⚠️  Failed: %d files\n", len(res.Failed))
			if verbose {
				for path, ferr := range res.Failed {
					fmt.Fprintf(os.Stderr, "  %s: %v\n", path, ferr)
				}
			}
		}

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration file location and its effective contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("\nRun 'stalefind config init' to create one.")
			return nil
		}

		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.EnsureConfigExists()
		if err != nil {
			return err
		}
		fmt.Printf("Config file: %s\n", cfgPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Update configuration values",
	Long:  `Updates configuration values in place. Supported keys: min_age_days, min_size, ignore_dev_preset.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}

		store := config.NewStore(cfgPath)
		return store.Update(func(cfg *config.Config) error {
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected key=value, got %q", arg)
				}
				switch key {
				case "min_age_days":
					var days int
					if _, err := fmt.Sscanf(value, "%d", &days); err != nil {
						return fmt.Errorf("invalid min_age_days %q", value)
					}
					cfg.MinAgeDays = days
				case "min_size":
					if _, err := utils.ParseSize(value); err != nil {
						return fmt.Errorf("invalid min_size %q: %w", value, err)
					}
					cfg.MinSize = value
				case "ignore_dev_preset":
					cfg.IgnoreDevPreset = value == "true" || value == "yes"
				default:
					return fmt.Errorf("unknown config key %q", key)
				}
			}
			return nil
		})
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tool availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := platform.GetInfo()
		if err != nil {
			return err
		}
		fmt.Printf("Platform: %s\n", info.OS)

		tools := []string{"mdfind", "mdls", "osascript", "open", "qlmanage"}
		if info.OS != platform.MacOS {
			tools = []string{"xdg-open"}
		}

		allFound := true
		for _, tool := range tools {
			if _, err := exec.LookPath(tool); err != nil {
				fmt.Printf("  ✗ %s (not found)\n", tool)
				allFound = false
			} else {
				fmt.Printf("  ✓ %s\n", tool)
			}
		}

		if platform.HasSpotlight() {
			fmt.Println("\nSpotlight discovery: available")
		} else {
			fmt.Println("\nSpotlight discovery: unavailable, falling back to filesystem walk")
		}

		if !allFound {
			fmt.Println("\nSome optional tools are missing; related features are disabled.")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	for _, cmd := range []*cobra.Command{scanCmd, cleanCmd} {
		cmd.Flags().StringArrayVar(&roots, "root", nil, "directory to scan (repeatable, overrides config)")
		cmd.Flags().IntVar(&minAgeDays, "min-age-days", -1, "only include files unused for this many days")
		cmd.Flags().StringVar(&minSizeStr, "min-size", "", "size threshold for generic files (e.g. 10MB)")
		cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "path to exclude (repeatable)")
		cmd.Flags().BoolVar(&ignoreDev, "ignore-dev", false, "skip developer artifacts")
		cmd.Flags().BoolVar(&noIgnoreDev, "no-ignore-dev", false, "include developer artifacts")
	}

	scanCmd.Flags().StringVar(&outputFmt, "output", "", "output format (summary, table, json, yaml)")
	scanCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")
	scanCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive mode")

	cleanCmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func loadConfig() (*config.Config, error) {
	path, err := resolvedConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// buildScanConfig merges the persisted settings with command-line overrides
func buildScanConfig(cmd *cobra.Command) (scan.Config, *config.Config, error) {
	appCfg, err := loadConfig()
	if err != nil {
		return scan.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(roots) > 0 {
		appCfg.Roots = roots
	}
	if cmd.Flags().Changed("min-age-days") {
		appCfg.MinAgeDays = minAgeDays
	}
	if minSizeStr != "" {
		appCfg.MinSize = minSizeStr
	}
	if len(excludes) > 0 {
		appCfg.ExcludePaths = append(appCfg.ExcludePaths, excludes...)
	}
	if ignoreDev {
		appCfg.IgnoreDevPreset = true
	}
	if noIgnoreDev {
		appCfg.IgnoreDevPreset = false
	}

	scanCfg, err := appCfg.ToScanConfig()
	if err != nil {
		return scan.Config{}, nil, err
	}
	if err := scanCfg.Validate(); err != nil {
		return scan.Config{}, nil, err
	}
	return scanCfg, appCfg, nil
}

func parseFormat(flag string, cfg *config.Config) reporter.OutputFormat {
	value := flag
	if value == "" {
		value = cfg.Output.Format
	}
	switch value {
	case "json":
		return reporter.FormatJSON
	case "yaml":
		return reporter.FormatYAML
	case "table":
		return reporter.FormatTable
	default:
		return reporter.FormatSummary
	}
}

func newController(rep *progress.Reporter) *scan.Controller {
	var querier scan.AttrQuerier = scan.NoopQuerier{}
	if platform.HasSpotlight() {
		querier = scan.SpotlightQuerier{}
	}
	return scan.NewController(
		scan.NewSource(),
		scan.NewResolver(querier),
		security.NewClassifier(),
		rep,
	)
}

// runScan runs a scan to completion and returns the qualifying items,
// largest first. Ctrl-C stops the scan and returns what was found so far.
func runScan(cfg scan.Config) ([]*scan.FileItem, error) {
	rep := progress.NewReporter()
	ctrl := newController(rep)
	collector := results.NewCollector()

	done := make(chan struct{})
	_, err := ctrl.Start(cfg, collector.Add, func() { close(done) })
	if err != nil {
		return nil, err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	var sub <-chan *progress.ScanProgress
	if verbose {
		sub = rep.Subscribe()
		go func() {
			for p := range sub {
				fmt.Fprintf(os.Stderr, "\r\033[K%s", progress.FormatScanProgress(p))
			}
		}()
	}

	fmt.Println("Scanning...")
	select {
	case <-done:
	case <-sigs:
		fmt.Fprintln(os.Stderr, "\nStopping...")
		ctrl.Stop()
		<-done
	}
	if sub != nil {
		rep.Unsubscribe(sub)
		fmt.Fprintln(os.Stderr)
	}

	return collector.Snapshot(), nil
}

// runInteractive runs the scan inside the terminal UI
func runInteractive(cfg scan.Config, appCfg *config.Config) error {
	rep := progress.NewReporter()
	ctrl := newController(rep)
	collector := results.NewCollector()
	for _, group := range appCfg.HiddenGroups {
		collector.SetGroupVisible(scan.TypeGroup(group), false)
	}

	logger, err := actionlog.NewLogger()
	if err != nil {
		logger = nil
	}

	app := models.NewApp(ctrl, collector, rep, cfg, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
