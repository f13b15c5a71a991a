// Package config loads vertexgen settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is read when no --config flag is given and the file exists
const DefaultFile = "vertexgen.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the contents of vertexgen.toml
type Config struct {
	Suffix     string `toml:"suffix"`     // output file suffix, replaces ".go"
	Tag        string `toml:"tag"`        // struct tag key holding attribute names
	Annotation string `toml:"annotation"` // doc comment marker that opts a type in
	LogLevel   string `toml:"log_level"`  // debug, info, warn or error
	Assertions bool   `toml:"assertions"` // emit compile-time layout checks
	Header     string `toml:"header"`     // extra comment under the generated header
}

func Default() Config {
	return Config{
		Suffix:     "_vertex.go",
		Tag:        "vertex",
		Annotation: "@vertex",
		LogLevel:   "info",
		Assertions: true,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultFile from dir if it exists, otherwise returns Default()
func LoadDefault(dir string) (Config, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.TrimSpace(strict.String()))
		}
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field for a usable value
func (c Config) Validate() error {
	if !strings.HasSuffix(c.Suffix, ".go") || strings.HasSuffix(c.Suffix, "_test.go") {
		return fmt.Errorf("%w: suffix %q must end in .go and not _test.go", ErrInvalidConfig, c.Suffix)
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("%w: suffix %q must not contain a path separator", ErrInvalidConfig, c.Suffix)
	}
	if !token.IsIdentifier(c.Tag) {
		return fmt.Errorf("%w: tag %q is not a valid struct tag key", ErrInvalidConfig, c.Tag)
	}
	if !strings.HasPrefix(c.Annotation, "@") || strings.ContainsAny(c.Annotation, " \t") {
		return fmt.Errorf("%w: annotation %q must start with @ and contain no spaces", ErrInvalidConfig, c.Annotation)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// OutputPath returns the generated file path for a source file
func (c Config) OutputPath(source string) string {
	return strings.TrimSuffix(source, ".go") + c.Suffix
}

// IsGenerated reports whether path is one of our own outputs
func (c Config) IsGenerated(path string) bool {
	return strings.HasSuffix(path, c.Suffix)
}
