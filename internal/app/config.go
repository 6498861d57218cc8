package app

import (
	"errors"
	"fmt"
)

// Commands understood by the inspector.
const (
	CommandMetadata   = "metadata"
	CommandOperations = "operations"
	CommandBuiltins   = "builtins"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command    string
	ModulePath string // dynamic module binary to inspect

	ModulesPath string // built-in module manifests (hcl files)
	JSONOutput  bool
	LogFormat   string
	LogLevel    string
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandMetadata, CommandOperations:
		if cfg.ModulePath == "" {
			return nil, fmt.Errorf("the '%s' command requires a module path", cfg.Command)
		}
	case CommandBuiltins:
		// No module path; operates on statically registered modules.
	case "":
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	default:
		return nil, fmt.Errorf("unknown command '%s'", cfg.Command)
	}

	return &cfg, nil
}
