package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Upstream completion API
	OpenAIAPIKey        string
	UpstreamURL         string
	UpstreamModel       string
	MaxCompletionTokens int
	UpstreamTimeout     time.Duration

	// CORS
	AllowedOrigin string

	// Catalog (optional)
	CatalogPath string
	DatabaseURL string
	// MigrationsDir overrides the migrations built into the binary.
	MigrationsDir string

	LogRequests bool
}

// Load reads the gateway configuration. A missing OPENAI_API_KEY is not fatal
// here: the gateway starts and reports the problem on every request.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:        getEnvOrDefault("OPENAI_API_KEY", ""),
		UpstreamURL:         getEnvOrDefault("UPSTREAM_URL", "https://api.openai.com/v1/chat/completions"),
		UpstreamModel:       getEnvOrDefault("UPSTREAM_MODEL", "gpt-4o"),
		MaxCompletionTokens: getEnvAsIntOrDefault("MAX_COMPLETION_TOKENS", 300),
		UpstreamTimeout:     time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 60)) * time.Second,
		AllowedOrigin:       getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		CatalogPath:         getEnvOrDefault("CATALOG_PATH", ""),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", ""),
		MigrationsDir:       getEnvOrDefault("MIGRATIONS_DIR", ""),
		LogRequests:         getEnvAsBoolOrDefault("LOG_REQUESTS", false),
	}

	return cfg
}

// ClientConfig configures the terminal assistant. Values come from built-in
// defaults, then the TOML file, then the environment.
type ClientConfig struct {
	GatewayURL       string `toml:"gateway_url"`
	Products         string `toml:"products"` // file path, http(s) URL or postgres URL
	Store            string `toml:"store"`    // "sqlite" | "redis" | "memory"
	StorePath        string `toml:"store_path"`
	RedisURL         string `toml:"redis_url"`
	HistoryLimit     int    `toml:"history_limit"`
	SystemPromptFile string `toml:"system_prompt_file"`
	Debug            bool   `toml:"debug"`
}

// LoadClient builds the client configuration. The TOML file is optional; a
// file that exists but does not parse is an error.
func LoadClient() (*ClientConfig, error) {
	godotenv.Load()

	home := getHomeDir()
	cfg := &ClientConfig{
		GatewayURL: "http://localhost:8080",
		Products:   "products.json",
		Store:      "sqlite",
		StorePath:  filepath.Join(home, ".beauty-assistant", "local.db"),
	}

	path := getEnvOrDefault("ASSISTANT_CONFIG", filepath.Join(home, ".beauty-assistant", "config.toml"))
	if err := loadClientFile(path, cfg); err != nil {
		return nil, err
	}

	cfg.GatewayURL = getEnvOrDefault("GATEWAY_URL", cfg.GatewayURL)
	cfg.Products = getEnvOrDefault("ASSISTANT_PRODUCTS", cfg.Products)
	cfg.Store = getEnvOrDefault("ASSISTANT_STORE", cfg.Store)
	cfg.StorePath = getEnvOrDefault("ASSISTANT_STORE_PATH", cfg.StorePath)
	cfg.RedisURL = getEnvOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.HistoryLimit = getEnvAsIntOrDefault("ASSISTANT_HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.SystemPromptFile = getEnvOrDefault("ASSISTANT_SYSTEM_PROMPT_FILE", cfg.SystemPromptFile)
	cfg.Debug = getEnvAsBoolOrDefault("ASSISTANT_DEBUG", cfg.Debug)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a session cannot start without.
func (c *ClientConfig) Validate() error {
	switch c.Store {
	case "sqlite":
		if c.StorePath == "" {
			return fmt.Errorf("store_path is required for the sqlite store")
		}
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the redis store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store %q (want sqlite, redis or memory)", c.Store)
	}
	if c.HistoryLimit < 0 || c.HistoryLimit == 1 {
		return fmt.Errorf("history_limit must be 0 (no limit) or at least 2")
	}
	return nil
}

func loadClientFile(path string, cfg *ClientConfig) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
