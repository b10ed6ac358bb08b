package stratagem

import "go.uber.org/zap"

// Config carries the optional collaborators of a TimeMachine
type Config struct {
	Logger *zap.Logger
}

// DefaultConfig returns a Config that discards all log output
func DefaultConfig() Config {
	return Config{
		Logger: zap.NewNop(),
	}
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
