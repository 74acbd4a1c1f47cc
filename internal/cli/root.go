package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/kazumasamatsumoto/algo/internal/config"
	"github.com/kazumasamatsumoto/algo/internal/emoji"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool

	// loaded once per process by getConfig
	appConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "algo",
		Short: "Step-by-step algorithm visualizer",
		Long: `algo runs classic algorithms one visible step at a time and counts the
steps, comparisons and swaps each of them needs.

Nineteen algorithms across sorting, searching, graphs, dynamic programming,
greedy choice and number theory can be run in the terminal UI, printed as a
report, compared against each other or turned into a tutoring prompt.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	// Add subcommands
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "algo %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

// getConfig loads the configuration on first use. Commands that only print
// static data never touch the config files.
func getConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appConfig = cfg
	if cfg.Output.Verbose {
		verbose = true
	}
	if !cfg.Output.Emoji {
		noEmoji = true
		emoji.SetEmojiDisabled(true)
	}
	return appConfig, nil
}

func isVerbose() bool {
	return verbose
}

func isEmojiDisabled() bool {
	return noEmoji
}

// useColor resolves the colour mode against the terminal
func useColor() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}

	mode := "auto"
	if appConfig != nil && appConfig.Output.ColorMode != "" {
		mode = appConfig.Output.ColorMode
	}

	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// newLogger creates a stderr logger that follows --verbose
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}
