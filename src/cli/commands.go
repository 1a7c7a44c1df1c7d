package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lost-woods/rngaudit/src/api"
	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/report"
	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/server"
	"github.com/lost-woods/rngaudit/src/source"
	"github.com/lost-woods/rngaudit/src/verdict"
	"github.com/lost-woods/rngaudit/src/whiten"
)

func (a *app) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the full test battery and print a report card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.load(a.inputPath(args))
			if err != nil {
				return err
			}
			return a.grade(cmd, "Unprocessed Raw RNG Data", set)
		},
	}
}

func (a *app) grade(cmd *cobra.Command, label string, set *samples.Set) error {
	card, err := report.Analyze(cmd.Context(), label, set, battery.DefaultParams(), verdict.DefaultPolicy())
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	if a.jsonOut {
		err = a.printJSON(card)
	} else {
		err = report.RenderCard(a.out, card)
	}
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	if !card.Passed() {
		return &ExitError{Code: ExitFindings}
	}
	return nil
}

func (a *app) compareCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Whiten the samples with SHAKE-256 and compare raw against processed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.load(a.inputPath(args))
			if err != nil {
				return err
			}

			cmp, processed := report.WhitenAndCompare(set, whiten.Shake{})
			if a.jsonOut {
				err = a.printJSON(cmp)
			} else {
				err = report.RenderComparison(a.out, cmp)
			}
			if err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}

			if out != "" {
				if err := samples.Save(out, processed); err != nil {
					return &ExitError{Code: ExitIOError, Err: err}
				}
				a.log.Infow("saved processed samples", "file", out, "count", len(processed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.cfg.OutputFile, "where to write the whitened samples (empty to skip)")
	return cmd
}

func (a *app) whitenCommand() *cobra.Command {
	var (
		out    string
		length int
	)
	cmd := &cobra.Command{
		Use:   "whiten [file]",
		Short: "Write the SHAKE-256 whitened samples, one integer per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < 0 {
				return &ExitError{Code: ExitIOError, Err: fmt.Errorf("invalid length: %d", length)}
			}
			set, err := a.load(a.inputPath(args))
			if err != nil {
				return err
			}

			processed := whiten.Shake{Length: length}.Apply(set.Bytes())
			if out == "" || out == "-" {
				err = samples.Write(a.out, processed)
			} else {
				err = samples.Save(out, processed)
			}
			if err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.cfg.OutputFile, "output file, or - for stdout")
	cmd.Flags().IntVar(&length, "length", 0, "output length in bytes (0 keeps the input length)")
	return cmd
}

func (a *app) captureCommand() *cobra.Command {
	var (
		size int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Read samples from the serial RNG and grade them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 2 || size > a.cfg.CaptureMax {
				return &ExitError{Code: ExitIOError, Err: fmt.Errorf("size must be between 2 and %d", a.cfg.CaptureMax)}
			}
			port, _, err := source.OpenSerial(a.cfg.Serial)
			if err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
			defer port.Close()

			set, err := source.Capture(port, size, a.cfg.SampleOptions())
			if err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
			if out != "" {
				if err := samples.Save(out, set.Bytes()); err != nil {
					return &ExitError{Code: ExitIOError, Err: err}
				}
			}
			return a.grade(cmd, "Captured Raw RNG Data", set)
		},
	}
	cmd.Flags().IntVar(&size, "size", 65536, "number of bytes to capture")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also save the captured samples to this file")
	return cmd
}

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := api.Options{}
			port, health, err := source.OpenSerial(a.cfg.Serial)
			switch {
			case errors.Is(err, source.ErrNotConfigured):
				a.log.Infow("no serial device configured; capture endpoint disabled")
			case err != nil:
				return &ExitError{Code: ExitIOError, Err: err}
			default:
				defer port.Close()
				opts.Source, opts.Health = port, health
			}

			srv := server.New(a.cfg, opts, prometheus.NewRegistry(), a.log)
			if err := srv.Run(ctx); err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.cfg.Port, "port", a.cfg.Port, "listen port")
	return cmd
}
