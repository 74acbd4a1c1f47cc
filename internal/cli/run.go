package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/spf13/cobra"
)

// settingsFlags are the flags shared by every command that builds a runner
type settingsFlags struct {
	size  int
	speed int
	data  string
	graph string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "size", settings.DefaultArraySize, fmt.Sprintf("input size (%d-%d)", settings.MinArraySize, settings.MaxArraySize))
	cmd.Flags().IntVar(&f.speed, "speed", settings.DefaultSpeed, fmt.Sprintf("pause between steps in ms (%d-%d)", settings.MinSpeed, settings.MaxSpeed))
	cmd.Flags().StringVar(&f.data, "data", string(settings.DataRandom), "array shape (random, sorted, reverse, nearly-sorted)")
	cmd.Flags().StringVar(&f.graph, "graph", string(settings.GraphSparse), "graph shape (complete, sparse, chain, tree)")
}

// apply overlays the flags the user actually set on base
func (f *settingsFlags) apply(cmd *cobra.Command, base settings.Settings) (settings.Settings, error) {
	s := base
	if cmd.Flag("size").Changed {
		s.ArraySize = f.size
	}
	if cmd.Flag("speed").Changed {
		s.Speed = f.speed
	}
	if cmd.Flag("data").Changed {
		d, err := settings.ParseDataType(f.data)
		if err != nil {
			return s, err
		}
		s.DataType = d
	}
	if cmd.Flag("graph").Changed {
		g, err := settings.ParseGraphType(f.graph)
		if err != nil {
			return s, err
		}
		s.GraphType = g
	}
	return settings.Clamp(s), nil
}

func newRunCommand() *cobra.Command {
	var (
		flags      settingsFlags
		instant    bool
		frames     bool
		seed       uint64
		timeout    time.Duration
		output     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Run one algorithm and print a report",
		Long: `Run an algorithm on a generated input and print its final state and counters.

With --frames every visible step is printed as it happens, paced by --speed
unless --instant is given. Without --frames the run is not paced.
Ctrl+C stops the run early; the report then shows the partial result.`,
		Example: `  algo run bubble-sort
  algo run quick-sort --size 40 --data reverse --output json
  algo run dijkstra --graph complete --frames --speed 100
  algo run knapsack --seed 42 --output-file knapsack.md --output markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := algorithm.ParseKind(args[0])
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
			if !cmd.Flag("frames").Changed {
				frames = cfg.Output.ShowFrames
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			pacer := runner.Instant()
			if frames && !instant {
				pacer = runner.RealTime()
			}

			gen := generator.New()
			if seed != 0 {
				gen = generator.NewSeeded(seed)
			}

			printer := newFramePrinter(cmd.OutOrStdout())
			hostOpts := []host.Option{
				host.WithLogger(newLogger("run")),
				host.WithGenerator(gen),
				host.WithRunnerOptions(runner.WithPacer(pacer)),
			}
			if frames {
				hostOpts = append(hostOpts, host.WithObserver(printer))
			}

			shell := host.New(settings.NewStore(s), hostOpts...)
			defer shell.Close()

			if err := shell.Select(kind); err != nil {
				return err
			}

			if frames {
				printer.start(shell.Current())
			}
			shell.Run(ctx)
			printer.wait()

			_, stoppedTotal := shell.History().Runs()
			report := formatter.NewRunReport(shell.Current(), stoppedTotal > 0)
			if frames {
				// the last frame was already printed
				report.Frame = ""
			}

			return writeReport(cmd, report, resolveFormat(cmd, output, cfg.Output.DefaultFormat), outputFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&instant, "instant", false, "do not pause between printed frames")
	cmd.Flags().BoolVar(&frames, "frames", false, "print every visible step")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the generated input (0 picks one)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "stop the run after this long (0 disables)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, markdown, csv)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "write output to file instead of stdout")

	return cmd
}

// framePrinter prints the runner's frame whenever its counters move. The
// observer side only pokes a channel; rendering happens on the printer's own
// goroutine so the algorithm never waits on the terminal.
type framePrinter struct {
	w      io.Writer
	notify chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

func newFramePrinter(w io.Writer) *framePrinter {
	return &framePrinter{
		w:      w,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (p *framePrinter) StatsChanged(runner.Stats) { p.poke() }

func (p *framePrinter) RunningChanged(bool) { p.poke() }

func (p *framePrinter) poke() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

func (p *framePrinter) start(r runner.Runner) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		last := ""
		show := func() {
			frame := r.Render()
			if frame == last {
				return
			}
			last = frame
			fmt.Fprintf(p.w, "%s\n%s\n\n", r.Stats(), frame)
		}
		for {
			select {
			case <-p.notify:
				show()
			case <-p.done:
				show()
				return
			}
		}
	}()
}

// wait flushes the final frame and stops the printer
func (p *framePrinter) wait() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	p.wg.Wait()
}
