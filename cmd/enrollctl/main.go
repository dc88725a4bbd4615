package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"enrollment-console/internal/config"
	"enrollment-console/internal/httpx"
	"enrollment-console/internal/logging"
	"enrollment-console/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// realMain wires config, logging, metrics and the API client, runs one
// command and returns the process exit code.
func realMain(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("enrollctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	envFile := global.String("env", ".env", "optional .env file")
	if err := global.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, "enrollctl:", err)
		return 1
	}

	logger, err := logging.New(cfg.Env, cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, "enrollctl:", err)
		return 1
	}
	defer logger.Sync()

	rec := metrics.New()
	api := httpx.New(cfg.API.BaseURL,
		httpx.WithLogger(logger),
		httpx.WithObserver(rec),
		httpx.WithTimeout(cfg.API.Timeout),
	)

	cli := newCommandLine(cfg, logger, api, stdin, stdout)
	err = cli.run(ctx, global.Args())

	if p := cfg.Metrics.TextfilePath; p != "" {
		if werr := rec.WriteTextfile(p); werr != nil {
			logger.Warn("metrics textfile not written", zap.String("path", p), zap.Error(werr))
		}
	}
	snap := rec.Snapshot()
	logger.Debug("api usage",
		zap.Uint64("requests", snap.Requests),
		zap.Uint64("failures", snap.Failures),
		zap.Float64("avg_request_ms", snap.AvgRequestMs),
	)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errHelp):
		return 2
	default:
		fmt.Fprintln(stderr, "enrollctl:", err)
		return 1
	}
}
