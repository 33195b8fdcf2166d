// Package config loads typesynth.yaml.
//
// Example:
//
//	version: "1"
//	builder:
//	  optionalWrappers: [Option, Maybe]
//	  builderSuffix: Builder
//	  constructorPrefix: New
//	  fileSuffix: _builder.go
//	  generateComments: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"typesynth/internal/gen"
	"typesynth/internal/plan"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "typesynth.yaml"

// Config is the root of typesynth.yaml.
type Config struct {
	Version string  `yaml:"version"`
	Builder Builder `yaml:"builder"`
}

// Builder configures builder synthesis.
type Builder struct {
	// OptionalWrappers are the generic type names treated as optional wrappers.
	// Each must be option.Option or a generic alias of it.
	OptionalWrappers  []string `yaml:"optionalWrappers"`
	BuilderSuffix     string   `yaml:"builderSuffix"`
	ConstructorPrefix string   `yaml:"constructorPrefix"`
	FileSuffix        string   `yaml:"fileSuffix"`
	GenerateComments  *bool    `yaml:"generateComments"`
	OptionImport      string   `yaml:"optionImport"`
	ConstructImport   string   `yaml:"constructImport"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Load reads path, or DefaultFile in the working directory when path is
// empty. A missing DefaultFile is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	c, err := LoadFile(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return c, err
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	b := &c.Builder
	planDefaults := plan.DefaultOptions()
	genDefaults := gen.DefaultGeneratorConfig()

	if len(b.OptionalWrappers) == 0 {
		b.OptionalWrappers = planDefaults.OptionalWrappers
	}

	if b.BuilderSuffix == "" {
		b.BuilderSuffix = planDefaults.BuilderSuffix
	}

	if b.ConstructorPrefix == "" {
		b.ConstructorPrefix = planDefaults.ConstructorPrefix
	}

	if b.FileSuffix == "" {
		b.FileSuffix = genDefaults.FileSuffix
	}

	if b.GenerateComments == nil {
		b.GenerateComments = &genDefaults.GenerateComments
	}

	if b.OptionImport == "" {
		b.OptionImport = genDefaults.OptionImport
	}

	if b.ConstructImport == "" {
		b.ConstructImport = genDefaults.ConstructImport
	}
}

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported version %q", c.Version))
	}

	for _, w := range c.Builder.OptionalWrappers {
		if !token.IsIdentifier(w) {
			errs = append(errs, fmt.Errorf("builder.optionalWrappers: %q is not an identifier", w))
		}
	}

	if s := c.Builder.BuilderSuffix; !token.IsIdentifier("X" + s) {
		errs = append(errs, fmt.Errorf("builder.builderSuffix: %q cannot extend an identifier", s))
	}

	if p := c.Builder.ConstructorPrefix; !token.IsIdentifier(p) {
		errs = append(errs, fmt.Errorf("builder.constructorPrefix: %q is not an identifier", p))
	}

	if s := c.Builder.FileSuffix; !strings.HasSuffix(s, ".go") || strings.HasSuffix(s, "_test.go") {
		errs = append(errs, fmt.Errorf("builder.fileSuffix: %q must end in .go and not _test.go", s))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// PlanOptions returns the classification and naming options.
func (c *Config) PlanOptions() plan.Options {
	return plan.Options{
		OptionalWrappers:  c.Builder.OptionalWrappers,
		BuilderSuffix:     c.Builder.BuilderSuffix,
		ConstructorPrefix: c.Builder.ConstructorPrefix,
	}
}

// GeneratorConfig returns the emitter configuration.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		FileSuffix:       c.Builder.FileSuffix,
		GenerateComments: *c.Builder.GenerateComments,
		OptionImport:     c.Builder.OptionImport,
		ConstructImport:  c.Builder.ConstructImport,
	}
}
