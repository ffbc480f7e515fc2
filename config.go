package webapp

import (
	"time"

	"github.com/grindlemire/go-webapp/internal/config"
	"github.com/grindlemire/go-webapp/internal/debug"
)

// Config holds runtime settings read from the environment.
type Config struct {
	LogLevel        string        `env:"WEBAPP_LOG_LEVEL" envDefault:"info"`
	DebugPath       string        `env:"WEBAPP_DEBUG"`
	ResizeDebounce  time.Duration `env:"WEBAPP_RESIZE_DEBOUNCE" envDefault:"20ms"`
	ResourceBaseURL string        `env:"WEBAPP_RESOURCE_BASE_URL"`
	FetchTimeout    time.Duration `env:"WEBAPP_FETCH_TIMEOUT" envDefault:"10s"`
	QueueSize       int           `env:"WEBAPP_QUEUE_SIZE" envDefault:"256"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		ResizeDebounce: 20 * time.Millisecond,
		FetchTimeout:   10 * time.Second,
		QueueSize:      256,
	}
}

// LoadConfig reads Config from WEBAPP_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OpenLogger builds the logger the config describes: the file at DebugPath
// when set, otherwise a discarding logger.
func (c Config) OpenLogger() (*debug.Logger, error) {
	level, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if c.DebugPath == "" {
		return debug.Discard(), nil
	}
	return debug.Open(c.DebugPath, level)
}
