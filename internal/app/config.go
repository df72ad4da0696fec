package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	DocPath string // hcl graph document

	Cycles    int
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocPath == "" {
		return nil, errors.New("DocPath is a required configuration field and cannot be empty")
	}
	if cfg.Cycles <= 0 {
		return nil, errors.New("Cycles must be a positive number")
	}
	return &cfg, nil
}
