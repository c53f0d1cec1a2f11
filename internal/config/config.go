// Package config loads ff8-magic settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/provide-io/ff8magic/pkg/magic/operations"
	_ "github.com/provide-io/ff8magic/pkg/magic/operations/compress"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// Config holds the tool settings. Command-line flags override these values.
type Config struct {
	LogLevel string `env:"FF8MAGIC_LOG_LEVEL" envDefault:"warn"`
	JSONLog  bool   `env:"FF8MAGIC_JSON_LOG"`
	LogPath  string `env:"FF8MAGIC_LOG_PATH"`
	NoColor  bool   `env:"FF8MAGIC_NO_COLOR"`

	// Backup is the operation chain applied to the kernel copy kept before
	// saving, e.g. "bzip2" or "raw|gzip".
	Backup string `env:"FF8MAGIC_BACKUP" envDefault:"bzip2"`

	ImportNameSlot int  `env:"FF8MAGIC_IMPORT_NAME_SLOT" envDefault:"32"`
	ImportDescSlot int  `env:"FF8MAGIC_IMPORT_DESC_SLOT" envDefault:"128"`
	WriteManifest  bool `env:"FF8MAGIC_WRITE_MANIFEST"   envDefault:"true"`
}

// Load reads dotenvPath (if it exists) and the process environment, the
// latter taking precedence.
func Load(dotenvPath string) (Config, error) {
	vars, err := readDotEnv(dotenvPath)
	if err != nil {
		return Config{}, err
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}
	return FromMap(vars)
}

// FromMap parses a configuration from an explicit variable set.
func FromMap(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the env parser cannot.
func (c Config) Validate() error {
	if c.ImportNameSlot <= 0 || c.ImportDescSlot <= 0 {
		return fmt.Errorf("import slot sizes must be positive (name=%d, desc=%d)", c.ImportNameSlot, c.ImportDescSlot)
	}
	if !strings.EqualFold(c.Backup, "none") {
		if _, err := operations.ParseChain(c.Backup); err != nil {
			return fmt.Errorf("FF8MAGIC_BACKUP: %w", err)
		}
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return vars, nil
}
