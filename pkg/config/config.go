// Package config reads the client configuration from a YAML file:
//
//	hosts: [http://localhost:3000, http://localhost:3001]
//	timeout: 10s
//	user_agent: lmq-cli
//	rotation:
//	  - { host: 0, queue: x, active: true }
package config

import (
	"errors"
	"io"
	"os"
	"time"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the content of a configuration file
type Config struct {
	Hosts     []string            `yaml:"hosts"`
	Timeout   Duration            `yaml:"timeout,omitempty"`
	UserAgent string              `yaml:"user_agent,omitempty"`
	Rotation  schema.RotationList `yaml:"rotation,omitempty"`
}

// Duration is a time.Duration written as a string, such as "10s"
type Duration time.Duration

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads and validates a configuration file
func Load(path string) (*Config, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r)
}

// Parse reads and validates a configuration
func Parse(r io.Reader) (*Config, error) {
	config := new(Config)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, lmq.ErrBadParameter.With(err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks there is at least one host, the timeout is not negative
// and every rotation entry refers to a host
func (c *Config) Validate() error {
	var result error
	if len(c.Hosts) == 0 {
		result = errors.Join(result, lmq.ErrBadParameter.With("no hosts"))
	}
	for i, host := range c.Hosts {
		if host == "" {
			result = errors.Join(result, lmq.ErrBadParameter.Withf("hosts[%d]: empty", i))
		}
	}
	if c.Timeout < 0 {
		result = errors.Join(result, lmq.ErrBadParameter.With("negative timeout"))
	}
	for i, entry := range c.Rotation {
		if entry.Host < 0 || entry.Host >= len(c.Hosts) {
			result = errors.Join(result, lmq.ErrBadParameter.Withf("rotation[%d]: host index %d out of range", i, entry.Host))
		}
		if entry.Queue == "" {
			result = errors.Join(result, lmq.ErrBadParameter.Withf("rotation[%d]: missing queue", i))
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// DURATION

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the value as a time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
