package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/gridtask/internal/app"
	"github.com/specialistvlad/gridtask/internal/cli"
	"github.com/specialistvlad/gridtask/internal/taskerr"
)

// main is the entrypoint for the gridtask application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Usage problems come back as *cli.ExitError with code 2.
func run(ctx context.Context, outW, logW io.Writer, args []string) (err error) {
	cfg, tokens, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}

	// Modules panic on registration mistakes; report them as errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	gridtask, err := app.NewApp(outW, logW, cfg)
	if err != nil {
		return err
	}

	if err := gridtask.Run(ctx, tokens); err != nil {
		if errors.Is(err, taskerr.ErrArgument) || errors.Is(err, taskerr.ErrType) {
			return &cli.ExitError{Code: 2, Message: err.Error()}
		}
		return err
	}
	return nil
}
