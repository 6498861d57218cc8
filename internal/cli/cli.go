package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/logos-core/lm/internal/app"
)

// Version is the inspector's release version.
const Version = "0.1.0"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func printUsage(output io.Writer) {
	fmt.Fprint(output, `lm - Logos Module Inspector

Usage: lm <command> [options] <module-path>

Commands:
  metadata    Show module metadata (name, version, description, etc.)
  operations  Show module operations and signatures ('methods' is an alias)
  builtins    List the modules compiled into this binary

Options:
  --json          Output in JSON format
  --modules-path  Path to the built-in module manifests directory
  --log-level     Set the logging level: 'debug', 'info', 'warn', 'error'
  --log-format    Log output format: 'text' or 'json'
  --help, -h      Show help information
  --version, -v   Show version information

Examples:
  lm metadata /path/to/module.so
  lm operations /path/to/module.so --json
  lm builtins --json
`)
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		printUsage(output)
		return nil, true, nil
	}

	switch args[0] {
	case "--version", "-v":
		fmt.Fprintf(output, "lm (Logos Module) version %s\n", Version)
		return nil, true, nil
	case "--help", "-h":
		printUsage(output)
		return nil, true, nil
	}

	command := args[0]
	switch command {
	case "methods":
		// Accepted for compatibility with earlier releases.
		command = app.CommandOperations
	case app.CommandMetadata, app.CommandOperations, app.CommandBuiltins:
		// valid
	default:
		return nil, false, &ExitError{
			Code:    1,
			Message: fmt.Sprintf("unknown command '%s'\n\nRun 'lm --help' to see available commands.", command),
		}
	}

	flagSet := flag.NewFlagSet("lm "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, "Usage: lm %s [options] <module-path>\n\nOptions:\n", command)
		flagSet.PrintDefaults()
	}

	jsonFlag := flagSet.Bool("json", false, "Output in JSON format.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	modulesPathFlag := flagSet.String("modules-path", "modules", "Path to the directory containing built-in module manifests.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	modulePath := ""
	switch flagSet.NArg() {
	case 0:
		// builtins takes no path; the path-requiring commands are rejected
		// below by config validation with a usage hint.
	case 1:
		modulePath = flagSet.Arg(0)
	default:
		return nil, false, &ExitError{Code: 1, Message: "multiple module paths specified"}
	}

	if modulePath == "" && command != app.CommandBuiltins {
		return nil, false, &ExitError{
			Code:    1,
			Message: fmt.Sprintf("missing module path\n\nUsage: lm %s [options] <module-path>", command),
		}
	}

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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:     command,
		ModulePath:  modulePath,
		ModulesPath: *modulesPathFlag,
		JSONOutput:  *jsonFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
