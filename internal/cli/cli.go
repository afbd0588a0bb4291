package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/varexport/internal/app"
	"github.com/vk/varexport/varexport"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("varexport", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
varexport - dump the runtime variables of this process.

Usage:
  varexport [options] [CONFIG_PATH...]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files that
    declare extra namespaces and variables.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths []string
	addPath := func(path string) error {
		if path == "" {
			return errors.New("empty path")
		}
		configPaths = append(configPaths, path)
		return nil
	}
	flagSet.Func("config", "Path to a config file or directory. May be repeated.", addPath)
	flagSet.Func("c", "Path to a config file or directory (shorthand).", addPath)
	namespaceFlag := flagSet.String("namespace", varexport.GlobalName, "Namespace to dump.")
	formatFlag := flagSet.String("format", app.FormatText, "Output format. Options: 'text', 'json' or 'prometheus'.")
	docsFlag := flagSet.Bool("docs", false, "Include variable docs as comments (text format only).")
	startTimeFlag := flagSet.Bool("start-time", false, "Show the exporter start time in the global namespace.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	configPaths = append(configPaths, flagSet.Args()...)
	slog.Debug("Arguments parsed successfully.", "config_paths", configPaths)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ConfigPaths: configPaths,
		Namespace:   *namespaceFlag,
		Format:      strings.ToLower(*formatFlag),
		Docs:        *docsFlag,
		StartTime:   *startTimeFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
