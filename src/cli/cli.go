// Package cli exposes the audit tool as cobra commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lost-woods/rngaudit/src/config"
	"github.com/lost-woods/rngaudit/src/samples"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitIOError  = 2
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

type app struct {
	cfg        config.Config
	log        *zap.SugaredLogger
	out        io.Writer
	ignoreZero bool
	jsonOut    bool
}

// NewRootCommand builds the command tree. cfg supplies the defaults that
// flags may override.
func NewRootCommand(cfg config.Config, log *zap.SugaredLogger, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, log: log, out: out}

	root := &cobra.Command{
		Use:           "rngaudit",
		Short:         "Statistical audit and SHAKE-256 whitening for hardware RNG samples",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg.IgnoreZero = a.ignoreZero
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&a.ignoreZero, "ignore-zero", cfg.IgnoreZero, "drop zero-valued samples and use the 255 symbol baselines")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of the colored report")

	root.AddCommand(
		a.analyzeCommand(),
		a.compareCommand(),
		a.whitenCommand(),
		a.captureCommand(),
		a.serveCommand(),
	)
	return root
}

// Execute runs the root command and maps the outcome onto an exit code.
func Execute(ctx context.Context, root *cobra.Command, args []string, log *zap.SugaredLogger) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			log.Error(exitErr.Err)
		}
		return exitErr.Code
	}
	log.Error(err)
	return ExitIOError
}

func (a *app) inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.InputFile
}

func (a *app) load(path string) (*samples.Set, error) {
	set, stats, err := samples.Load(path, a.cfg.SampleOptions())
	if errors.Is(err, samples.ErrNoSamples) {
		fmt.Fprintf(a.out, "No valid data found in %s\n", path)
		return nil, &ExitError{Code: ExitIOError}
	}
	if err != nil {
		return nil, &ExitError{Code: ExitIOError, Err: err}
	}
	a.log.Infow("loaded samples",
		"file", path,
		"accepted", stats.Accepted,
		"skipped", stats.Skipped,
		"zero_dropped", stats.ZeroDropped,
	)
	return set, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
