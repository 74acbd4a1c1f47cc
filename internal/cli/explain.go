package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/explain"
	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/spf13/cobra"
)

func newExplainCommand() *cobra.Command {
	var (
		flags    settingsFlags
		noFrame  bool
		maxRows  int
		seed     uint64
		response string
	)

	cmd := &cobra.Command{
		Use:   "explain <algorithm>",
		Short: "Build a tutoring prompt for a run",
		Long: `Run an algorithm without pacing and print a prompt asking a language model
to explain the run step by step. Paste the prompt into any chat model.

With --response the model's answer is read from a file instead, checked
against the expected JSON shape and printed as plain text.`,
		Example: `  algo explain insertion-sort --size 8
  algo explain dijkstra --graph chain --no-frame
  algo explain insertion-sort --response answer.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := algorithm.ParseKind(args[0])
			if err != nil {
				return err
			}

			if response != "" {
				return printExplanation(cmd, response)
			}

			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := flags.apply(cmd, cfg.Settings)
			if err != nil {
				return err
			}

			gen := generator.New()
			if seed != 0 {
				gen = generator.NewSeeded(seed)
			}
			shell := host.New(settings.NewStore(s),
				host.WithLogger(newLogger("explain")),
				host.WithGenerator(gen),
				host.WithRunnerOptions(runner.WithPacer(runner.Instant())))
			defer shell.Close()

			if err := shell.Select(kind); err != nil {
				return err
			}
			shell.Run(context.Background())

			pattern := explain.NewRunPattern().
				WithReport(formatter.NewRunReport(shell.Current(), false)).
				WithMaxFrameRows(maxRows)
			if noFrame {
				pattern = pattern.WithoutFrame()
			}

			fmt.Fprintln(cmd.OutOrStdout(), pattern.Build().String())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noFrame, "no-frame", false, "leave the final frame out of the prompt")
	cmd.Flags().IntVar(&maxRows, "max-rows", 30, "maximum frame rows included in the prompt")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the generated input (0 picks one)")
	cmd.Flags().StringVar(&response, "response", "", "render a model response file instead of building a prompt")

	return cmd
}

// printExplanation renders a saved model response
func printExplanation(cmd *cobra.Command, path string) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	e, ok := explain.ParseExplanation(string(content))
	if !ok {
		return fmt.Errorf("response in %s does not contain an explanation", path)
	}
	fmt.Fprint(cmd.OutOrStdout(), e.Render())
	return nil
}
