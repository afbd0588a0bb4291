package app

import (
	"errors"
	"fmt"

	"github.com/vk/varexport/varexport"
)

// Output formats understood by Run.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories
	Namespace   string
	Format      string
	Docs        bool
	StartTime   bool

	LogFormat string
	LogLevel  string
}

// NewConfig applies defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = varexport.GlobalName
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	switch cfg.Format {
	case FormatText, FormatJSON, FormatPrometheus:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'text', 'json' or 'prometheus'", cfg.Format)
	}
	if cfg.Docs && cfg.Format != FormatText {
		return nil, errors.New("docs are only available with the text format")
	}

	return &cfg, nil
}
