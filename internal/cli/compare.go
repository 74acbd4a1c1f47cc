package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/compare"
	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var (
		flags       settingsFlags
		all         bool
		category    string
		rounds      int
		concurrency int
		seed        uint64
		output      string
		outputFile  string
	)

	cmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "Compare algorithms on the same inputs",
		Long: `Run several algorithms on identical generated inputs and rank them by the
mean number of steps they needed. Runs are not paced.

Each round generates a new input from seed+round, so two algorithms in the
same round always see the same data.`,
		Example: `  algo compare bubble-sort insertion-sort quick-sort
  algo compare --category sorting --rounds 5 --data nearly-sorted
  algo compare --all --output markdown --output-file ranking.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := compareKinds(args, all, category)
			if err != nil {
				return err
			}

			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := flags.apply(cmd, cfg.Settings)
			if err != nil {
				return err
			}

			opts := []compare.Option{
				compare.WithRounds(cfg.Compare.Rounds),
				compare.WithConcurrency(cfg.Compare.Concurrency),
				compare.WithLogger(newLogger("compare")),
			}
			if cmd.Flag("rounds").Changed {
				opts = append(opts, compare.WithRounds(rounds))
			}
			if cmd.Flag("concurrency").Changed {
				opts = append(opts, compare.WithConcurrency(concurrency))
			}
			switch {
			case cmd.Flag("seed").Changed:
				opts = append(opts, compare.WithSeed(seed))
			case cfg.Compare.Seed != 0:
				opts = append(opts, compare.WithSeed(cfg.Compare.Seed))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := compare.New(s, opts...).Run(ctx, kinds)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			report := formatter.NewComparisonReport(s, results)
			return writeReport(cmd, report, resolveFormat(cmd, output, cfg.Output.DefaultFormat), outputFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "compare every algorithm")
	cmd.Flags().StringVar(&category, "category", "", "compare every algorithm of one category")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of inputs per algorithm")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "runners executing at once")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first round (0 picks one)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, markdown, csv)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "write output to file instead of stdout")

	return cmd
}

// compareKinds resolves the positional arguments, --all and --category
func compareKinds(args []string, all bool, category string) ([]algorithm.Kind, error) {
	var kinds []algorithm.Kind
	switch {
	case all:
		kinds = algorithm.Kinds()
	case category != "":
		categories, err := selectCategories(category)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, algorithm.ByCategory()[categories[0]]...)
	}

	for _, arg := range args {
		kind, err := algorithm.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	if len(kinds) < 2 && !all && category == "" {
		return nil, fmt.Errorf("need at least two algorithms, or --all, or --category")
	}
	return kinds, nil
}
