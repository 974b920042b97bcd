package srarq

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the parameters of a simulation run.
type Config struct {
	// Messages is the number of messages the generating source offers.
	Messages int `yaml:"messages"`
	// Loss is the probability that the channel drops a packet.
	Loss float64 `yaml:"loss"`
	// Corrupt is the probability that the channel flips a byte.
	Corrupt float64 `yaml:"corrupt"`
	// Interarrival is the mean time between message arrivals, in virtual
	// seconds.
	Interarrival float64 `yaml:"interarrival"`
	// Seed feeds the run's single random source.
	Seed int64 `yaml:"seed"`
	// Trace selects the output level, TraceOff through TraceInternal.
	Trace int `yaml:"trace"`
}

// DefaultConfig mirrors the classic interactive emulator prompts.
func DefaultConfig() Config {
	return Config{
		Messages:     20,
		Loss:         0.1,
		Corrupt:      0.2,
		Interarrival: 40,
		Seed:         1,
		Trace:        TraceEvents,
	}
}

// LoadConfig reads a YAML simulation config. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// Validate rejects parameter values the emulator cannot run with.
func (cfg Config) Validate() error {
	if cfg.Messages <= 0 {
		return errors.Errorf("messages must be positive, got %d", cfg.Messages)
	}
	if cfg.Loss < 0 || cfg.Loss >= 1 {
		return errors.Errorf("loss probability must be in [0, 1), got %v", cfg.Loss)
	}
	if cfg.Corrupt < 0 || cfg.Corrupt >= 1 {
		return errors.Errorf("corrupt probability must be in [0, 1), got %v", cfg.Corrupt)
	}
	if cfg.Interarrival <= 0 {
		return errors.Errorf("interarrival must be positive, got %v", cfg.Interarrival)
	}
	if cfg.Trace < TraceOff || cfg.Trace > TraceInternal {
		return errors.Errorf("trace level must be between %d and %d, got %d", TraceOff, TraceInternal, cfg.Trace)
	}
	return nil
}
