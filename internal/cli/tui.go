package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/kazumasamatsumoto/algo/internal/ui"
	"github.com/spf13/cobra"
)

func newTUICommand() *cobra.Command {
	var (
		flags     settingsFlags
		watchFile string
		logFile   string
		theme     string
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive visualizer",
		Long: `Open the terminal UI: pick an algorithm from the menu, then run, stop and
reset it while changing size, speed and input shape on the fly.

With --watch the settings section of a YAML file is reloaded into the UI
every time the file is saved. Press ? inside the UI for all key bindings.`,
		Example: `  algo tui
  algo tui --theme high-contrast --size 30
  algo tui --watch settings.yaml --log algo.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := flags.apply(cmd, cfg.Settings)
			if err != nil {
				return err
			}
			store := settings.NewStore(s)

			// the terminal belongs to the UI, so logs only go to a file
			log := logger.Discard()
			if logFile != "" {
				// #nosec G304 - path comes from the user's own flag
				f, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil && isVerbose() {
						fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
					}
				}()
				log = logger.NewWithWriter("tui", f, isVerbose())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watchFile != "" {
				w, err := settings.NewWatcher(watchFile, store, log.WithComponent("watch"))
				if err != nil {
					return err
				}
				if err := w.Reload(); err != nil {
					return err
				}
				watchCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				go func() {
					if err := w.Run(watchCtx); err != nil {
						log.Warn("settings watcher stopped: %v", err)
					}
				}()
			}

			if !cmd.Flag("theme").Changed {
				theme = cfg.UI.Theme
			}
			opts := ui.Options{
				Theme:     theme,
				AltScreen: cfg.UI.AltScreen,
				ShowHelp:  cfg.UI.ShowHelp,
				Logger:    log,
			}

			var hostOpts []host.Option
			if seed != 0 {
				hostOpts = append(hostOpts, host.WithGenerator(generator.NewSeeded(seed)))
			}
			return ui.Run(ctx, store, opts, hostOpts...)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&watchFile, "watch", "", "reload settings from this YAML file when it changes")
	cmd.Flags().StringVar(&logFile, "log", "", "append logs to this file")
	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, high-contrast, minimal)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for generated inputs (0 picks one)")

	return cmd
}
