package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr     = ":8080"
	DefaultEnvironment    = "master"
	DefaultContentfulHost = "cdn.contentful.com"
	DefaultEntryID        = "3mmY5SfPXyUaGqpjbNYxka"
	DefaultPageSize       = 5
	DefaultStaticDir      = "./static"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "auto"
)

type Config struct {
	ListenAddr string

	// Contentful settings
	SpaceID     string
	AccessToken string
	Environment string
	Host        string
	ContentType string

	// When set, articles are read from Markdown files instead of Contentful.
	ContentDir string

	DefaultEntryID string
	PageSize       int
	TemplatePath   string
	StaticDir      string

	LogLevel  string
	LogFormat string
}

func Default() Config {
	return Config{
		ListenAddr:     DefaultListenAddr,
		Environment:    DefaultEnvironment,
		Host:           DefaultContentfulHost,
		DefaultEntryID: DefaultEntryID,
		PageSize:       DefaultPageSize,
		StaticDir:      DefaultStaticDir,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// Load reads .env (if present) and the environment on top of Default.
func Load() Config {
	// .env is optional
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)

	cfg.SpaceID = getEnv("CONTENTFUL_SPACE_ID", "")
	cfg.AccessToken = getEnv("CONTENTFUL_ACCESS_TOKEN", "")
	cfg.Environment = getEnv("CONTENTFUL_ENVIRONMENT", cfg.Environment)
	cfg.Host = getEnv("CONTENTFUL_HOST", cfg.Host)
	cfg.ContentType = getEnv("CONTENTFUL_CONTENT_TYPE", "")

	cfg.ContentDir = getEnv("CONTENT_DIR", "")

	cfg.DefaultEntryID = getEnv("DEFAULT_ENTRY_ID", cfg.DefaultEntryID)
	cfg.TemplatePath = getEnv("TEMPLATE_PATH", "")
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if ps := getenv("PAGE_SIZE"); ps != "" {
		if val, err := strconv.Atoi(ps); err == nil {
			cfg.PageSize = val
		}
	}
	return cfg
}

// UseContentful reports whether articles come from Contentful.
func (c Config) UseContentful() bool {
	return c.ContentDir == ""
}

func (c Config) Validate() error {
	if c.PageSize < 1 {
		return errors.New("page size must be at least 1")
	}
	if c.UseContentful() {
		if c.SpaceID == "" {
			return errors.New("CONTENTFUL_SPACE_ID is required unless CONTENT_DIR is set")
		}
		if c.AccessToken == "" {
			return errors.New("CONTENTFUL_ACCESS_TOKEN is required unless CONTENT_DIR is set")
		}
	}
	return nil
}
