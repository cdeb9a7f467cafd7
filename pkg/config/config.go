// Package config loads toolkit configuration from YAML and materializes
// it into a session site: base URL, wait defaults, and the ambient
// decorator set by name.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/lookout/pkg/decorate"
	"github.com/entrhq/lookout/pkg/query"
	"github.com/entrhq/lookout/pkg/session"
	"github.com/entrhq/lookout/pkg/wait"
)

// Duration wraps time.Duration so YAML values can be written in the
// familiar "5s" / "250ms" form; yaml.v3 only handles raw nanosecond
// integers on its own.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the YAML configuration for a test site.
type Config struct {
	// BaseURL is the application under test.
	BaseURL string `yaml:"base_url"`

	// Wait supplies the default wait policy.
	Wait WaitConfig `yaml:"wait"`

	// Decorators lists ambient decorator names in chain order.
	// Known names: logging, highlight, slow-motion, state-cache.
	Decorators []string `yaml:"decorators"`

	// SlowMotion is the delay used by the slow-motion decorator when it
	// is enabled. Zero selects the library default.
	SlowMotion Duration `yaml:"slow_motion"`

	// Highlight configures the highlight decorator when enabled.
	Highlight HighlightConfig `yaml:"highlight"`

	// Logging configures the logging decorator when enabled.
	Logging LoggingConfig `yaml:"logging"`
}

// WaitConfig defines the default wait policy.
type WaitConfig struct {
	Timeout  Duration `yaml:"timeout"`
	Interval Duration `yaml:"interval"`
}

// HighlightConfig defines the highlight outline style.
type HighlightConfig struct {
	Color string `yaml:"color"`
	Width int    `yaml:"width"`
}

// LoggingConfig defines logging decorator behavior.
type LoggingConfig struct {
	// SelectorFilter is a glob limiting query records, e.g. "css=*".
	SelectorFilter string `yaml:"selector_filter"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration for construction-time mistakes.
func (c *Config) Validate() error {
	if c.Wait.Timeout < 0 {
		return &query.ConfigurationError{Reason: fmt.Sprintf("wait timeout must not be negative, got %v", c.Wait.Timeout.Std())}
	}
	if c.Wait.Interval < 0 {
		return &query.ConfigurationError{Reason: fmt.Sprintf("wait interval must not be negative, got %v", c.Wait.Interval.Std())}
	}
	if c.SlowMotion < 0 {
		return &query.ConfigurationError{Reason: fmt.Sprintf("slow_motion must not be negative, got %v", c.SlowMotion.Std())}
	}
	for _, name := range c.Decorators {
		switch name {
		case "logging", "highlight", "slow-motion", "state-cache":
		default:
			return &query.ConfigurationError{Reason: fmt.Sprintf("unknown decorator %q", name)}
		}
	}
	return nil
}

// Site materializes the configuration into a session site, building the
// named ambient decorators.
func (c *Config) Site() (*session.Site, error) {
	decorators := make([]decorate.Decorator, 0, len(c.Decorators))
	for _, name := range c.Decorators {
		d, err := c.buildDecorator(name)
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, d)
	}

	return &session.Site{
		BaseURL: c.BaseURL,
		Policy: wait.NewPolicy(
			wait.WithTimeout(c.Wait.Timeout.Std()),
			wait.WithInterval(c.Wait.Interval.Std()),
		),
		Decorators: decorators,
	}, nil
}

func (c *Config) buildDecorator(name string) (decorate.Decorator, error) {
	switch name {
	case "logging":
		var opts []decorate.LoggingOption
		if c.Logging.SelectorFilter != "" {
			opts = append(opts, decorate.LoggingWithSelectorFilter(c.Logging.SelectorFilter))
		}
		return decorate.NewLogging(opts...)
	case "highlight":
		var opts []decorate.HighlightOption
		if c.Highlight.Color != "" {
			opts = append(opts, decorate.HighlightWithColor(c.Highlight.Color))
		}
		if c.Highlight.Width != 0 {
			opts = append(opts, decorate.HighlightWithWidth(c.Highlight.Width))
		}
		return decorate.NewHighlight(opts...)
	case "slow-motion":
		return decorate.NewSlowMotion(c.SlowMotion.Std())
	case "state-cache":
		return decorate.NewStateCache(), nil
	default:
		return nil, &query.ConfigurationError{Reason: fmt.Sprintf("unknown decorator %q", name)}
	}
}
