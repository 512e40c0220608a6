package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridtask/internal/app"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes the process-level flags that precede the task name. It
// returns the validated configuration and the remaining tokens, which belong
// to the task tree. --help prints the flag usage and is forwarded to the
// tree so the task listing follows.
func Parse(args []string, output io.Writer) (*app.Config, []string, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet(app.RootName, pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SetInterspersed(false)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
gridtask - runs tasks declared in Go modules and HCL manifests.

Usage:
  gridtask [flags] <task> [sub-task...] [arguments] [--options]

Flags:
%s`, flagSet.FlagUsages())
	}

	helpFlag := flagSet.BoolP("help", "h", false, "Show this usage and the task listing.")
	manifestsFlag := flagSet.StringP("manifests", "m", "", "Directory containing .hcl task manifests.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	helpWidthFlag := flagSet.Int("help-width", 0, "Wrap help at this many columns. 0 detects the terminal width.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			*helpFlag = true
		} else {
			return nil, nil, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	slog.Debug("Arguments parsed successfully.")

	rest := flagSet.Args()
	if *helpFlag {
		flagSet.Usage()
		rest = append([]string{"--help"}, rest...)
	}

	config, err := app.NewConfig(app.Config{
		ManifestsPath: *manifestsFlag,
		LogFormat:     strings.ToLower(*logFormatFlag),
		LogLevel:      strings.ToLower(*logLevelFlag),
		HelpWidth:     *helpWidthFlag,
	})
	if err != nil {
		return nil, nil, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config, "task_tokens", len(rest))
	return config, rest, nil
}
