package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lost-woods/rngaudit/src/cli"
	"github.com/lost-woods/rngaudit/src/config"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitIOError)
	}

	zapLogger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitIOError)
	}
	log := zapLogger.Sugar()

	root := cli.NewRootCommand(cfg, log, os.Stdout)
	code := cli.Execute(context.Background(), root, os.Args[1:], log)
	_ = zapLogger.Sync()
	os.Exit(code)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	// Reports go to stdout; keep logs off it.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
