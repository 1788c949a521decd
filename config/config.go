// Package config loads the optional YAML file describing the service under test.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/launchdarkly/rest-contract-tests/restharness"
)

// DefaultBaseURI is the public instance of the placeholder API.
const DefaultBaseURI = "https://jsonplaceholder.typicode.com"

// Config is the contents of a configuration file. Command-line parameters override it.
type Config struct {
	BaseURI     string            `yaml:"baseUri"`
	ContentType string            `yaml:"contentType"`
	Headers     map[string]string `yaml:"headers"`
	Timeout     Duration          `yaml:"timeout"`
	SoftAssert  bool              `yaml:"softAssert"`
}

// Duration is a time.Duration written in the file as a string such as "10s".
type Duration time.Duration

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

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		BaseURI:     DefaultBaseURI,
		ContentType: "json",
		Timeout:     Duration(restharness.DefaultTimeout),
	}
}

// Load reads and validates a configuration file. Anything the file leaves out keeps its
// default value. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that would otherwise only fail once tests start.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURI)
	if err != nil {
		return fmt.Errorf("invalid base URI %q: %w", c.BaseURI, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URI %q: must be an absolute http or https URL", c.BaseURI)
	}
	if _, ok := restharness.ParseContentType(c.ContentType); !ok {
		return fmt.Errorf("unknown content type %q", c.ContentType)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", time.Duration(c.Timeout))
	}
	return nil
}

// RequestSpec returns the RequestSpec described by the configuration. It assumes Validate
// has succeeded.
func (c *Config) RequestSpec() restharness.RequestSpec {
	contentType, _ := restharness.ParseContentType(c.ContentType)
	return restharness.NewSpec(c.BaseURI,
		restharness.WithContentType(contentType),
		restharness.WithHeaders(c.Headers),
	)
}

// Mode returns the assertion mode.
func (c *Config) Mode() restharness.Mode {
	if c.SoftAssert {
		return restharness.SoftAssert
	}
	return restharness.HardAssert
}
