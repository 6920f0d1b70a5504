package config

import (
	"os"
	"path/filepath"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// EnvPrefix is prepended to every environment variable, e.g. CONSULTEJA_TIMEOUT.
const EnvPrefix = "CONSULTEJA"

// Dir returns ~/.config/consulteja.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "consulteja")
	}
	return filepath.Join(home, ".config", "consulteja")
}

// DataDir returns ~/.local/share/consulteja.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "consulteja")
	}
	return filepath.Join(home, ".local", "share", "consulteja")
}

// DefaultFiles are the config files consulted by Load, lowest priority first.
func DefaultFiles() []string {
	return []string{
		filepath.Join(Dir(), "config.yaml"),
		"consulteja.yaml",
	}
}

// Load reads defaults, config files and CONSULTEJA_* environment variables.
// Missing files are not an error.
func Load() (Config, error) {
	return LoadFiles(DefaultFiles()...)
}

// LoadFiles is Load with an explicit file list.
func LoadFiles(files ...string) (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:          EnvPrefix,
		SkipFlags:          true,
		AllowUnknownFields: true,
		AllowUnknownEnvs:   true,
		Files:              files,
		MergeFiles:         true,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(DataDir(), "consulteja.db")
	}
	if c.Storage.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" && c.Storage.Driver == "postgres" {
			c.Storage.DatabaseURL = v
		}
	}
	if c.History.Limit <= 0 {
		c.History.Limit = 5
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return errors.New("storage.database_url is required for the postgres driver")
		}
	default:
		return errors.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if len(c.Providers.Order) == 0 {
		return errors.New("providers.order must name at least one provider")
	}
	return nil
}
