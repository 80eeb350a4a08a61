package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/calparse/internal/app"
	"github.com/specialistvlad/calparse/internal/config"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Options left at their defaults stay empty in the config so that a profile
// can still set them.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("calparse", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
calparse - Convert an instrument calibration report into YAML and TSV files.

Usage:
  calparse [options] INPUT OUTPUT_DIR

Arguments:
  INPUT
    Path to the report (comma-separated text).
  OUTPUT_DIR
    Directory to create. It must not exist yet; it receives metadata.yaml,
    calibration.yaml and results/<datatype>.tsv.

Options:
`)
		flagSet.PrintDefaults()
	}

	profileFlag := flagSet.String("config", "", "Path to an HCL profile file or a directory of .hcl files.")
	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	summaryFlag := flagSet.Bool("summary", false, "Print a summary table of the conversion to stdout.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if flagSet.NArg() != 2 {
		return nil, false, &ExitError{
			Code:    2,
			Message: fmt.Sprintf("expected INPUT and OUTPUT_DIR arguments, got %d argument(s); see -h", flagSet.NArg()),
		}
	}

	cfg := app.Config{
		InputPath:   flagSet.Arg(0),
		OutputDir:   flagSet.Arg(1),
		ProfilePath: *profileFlag,
	}

	if explicit["log-format"] {
		cfg.LogFormat = strings.ToLower(*logFormatFlag)
		if err := config.ValidateLogFormat(cfg.LogFormat); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if explicit["log-level"] {
		cfg.LogLevel = strings.ToLower(*logLevelFlag)
		if err := config.ValidateLogLevel(cfg.LogLevel); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if explicit["summary"] {
		cfg.Summary = summaryFlag
	}
	slog.Debug("CLI parameter validation complete.")

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}
