package config

import "time"

// Config holds the application configuration.
type Config struct {
	Theme   string        `yaml:"theme" env:"THEME" usage:"Custom theme name from the themes directory"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" default:"45s" usage:"Overall lookup timeout"`

	Providers ProvidersConfig `yaml:"providers" env:"PROVIDERS"`
	HTTP      HTTPConfig      `yaml:"http" env:"HTTP"`
	History   HistoryConfig   `yaml:"history" env:"HISTORY"`
	Storage   StorageConfig   `yaml:"storage" env:"STORAGE"`
	Log       LogConfig       `yaml:"log" env:"LOG"`
	Server    ServerConfig    `yaml:"server" env:"SERVER"`
}

// ProvidersConfig lists the product databases in fallback order.
type ProvidersConfig struct {
	Order         []string            `yaml:"order" env:"ORDER" default:"barcodelookup,upcitemdb,openfoodfacts,cosmos"`
	Timeout       time.Duration       `yaml:"timeout" env:"TIMEOUT" default:"10s" usage:"Per-provider timeout"`
	BarcodeLookup BarcodeLookupConfig `yaml:"barcodelookup" env:"BARCODELOOKUP"`
	UPCItemDB     UPCItemDBConfig     `yaml:"upcitemdb" env:"UPCITEMDB"`
	OpenFoodFacts OpenFoodFactsConfig `yaml:"openfoodfacts" env:"OPENFOODFACTS"`
	Cosmos        CosmosConfig        `yaml:"cosmos" env:"COSMOS"`
}

type BarcodeLookupConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL" default:"https://api.barcodelookup.com"`
	APIKey  string `yaml:"api_key" env:"API_KEY" default:"demo"`
}

type UPCItemDBConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL" default:"https://api.upcitemdb.com"`
}

type OpenFoodFactsConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL" default:"https://world.openfoodfacts.org"`
}

type CosmosConfig struct {
	BaseURL   string `yaml:"base_url" env:"BASE_URL" default:"https://cosmos.bluesoft.com.br"`
	Token     string `yaml:"token" env:"TOKEN"`
	UserAgent string `yaml:"user_agent" env:"USER_AGENT" default:"ConsulteJa-App/1.0"`
}

// HTTPConfig configures the outbound client shared by all providers.
type HTTPConfig struct {
	UserAgent string `yaml:"user_agent" env:"USER_AGENT" default:"consulteja/1.0"`
	Proxy     string `yaml:"proxy" env:"PROXY" usage:"http://, https:// or socks5:// proxy URL"`
	NoProxy   string `yaml:"no_proxy" env:"NO_PROXY"`
	CAFile    string `yaml:"ca_file" env:"CA_FILE" usage:"Extra PEM root certificates"`
	Insecure  bool   `yaml:"insecure_skip_verify" env:"INSECURE_SKIP_VERIFY"`
}

type HistoryConfig struct {
	Limit int `yaml:"limit" env:"LIMIT" default:"5"`
}

// StorageConfig selects where history and preferences live.
type StorageConfig struct {
	Driver      string `yaml:"driver" env:"DRIVER" default:"sqlite" usage:"sqlite or postgres"`
	Path        string `yaml:"path" env:"PATH" usage:"SQLite database path"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" usage:"PostgreSQL connection URL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL" default:"info"`
	File  string `yaml:"file" env:"FILE"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR" default:"127.0.0.1:8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"15s"`
	ReadinessDelay  time.Duration `yaml:"readiness_delay" env:"READINESS_DELAY" default:"1s"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout: 45 * time.Second,
		Providers: ProvidersConfig{
			Order:   []string{"barcodelookup", "upcitemdb", "openfoodfacts", "cosmos"},
			Timeout: 10 * time.Second,
			BarcodeLookup: BarcodeLookupConfig{
				BaseURL: "https://api.barcodelookup.com",
				APIKey:  "demo",
			},
			UPCItemDB:     UPCItemDBConfig{BaseURL: "https://api.upcitemdb.com"},
			OpenFoodFacts: OpenFoodFactsConfig{BaseURL: "https://world.openfoodfacts.org"},
			Cosmos: CosmosConfig{
				BaseURL:   "https://cosmos.bluesoft.com.br",
				UserAgent: "ConsulteJa-App/1.0",
			},
		},
		HTTP:    HTTPConfig{UserAgent: "consulteja/1.0"},
		History: HistoryConfig{Limit: 5},
		Storage: StorageConfig{Driver: "sqlite"},
		Log:     LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 15 * time.Second,
			ReadinessDelay:  time.Second,
		},
	}
}
