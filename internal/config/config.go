package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Database DatabaseConfig
	Fetcher  FetcherConfig
	Auth     AuthConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	fetcher, err := loadFetcherConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Database: loadDatabaseConfig(),
		Fetcher:  fetcher,
		Auth:     AuthConfig{JWTSecret: strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the completion provider. The provider speaks the
// OpenAI-compatible API exposed by Groq.
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	MaxTokens   *int
}

// Enabled reports whether an API key was provided. Without one, analysis
// requests still complete but always take the fallback path.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// NewChatModel constructs a tool-calling chat model for the given model id,
// falling back to the configured default id when empty.
func (c AIConfig) NewChatModel(ctx context.Context, modelID string) (model.ToolCallingChatModel, error) {
	if modelID == "" {
		modelID = c.Model
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       modelID,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return openai.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("GROQ_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("GROQ_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		Model:       getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		BaseURL:     getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// DatabaseConfig selects the storage backend. Sqlite is the default so the
// service runs with zero external dependencies; set DATABASE_DRIVER=postgres
// plus a DSN for shared deployments.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

func loadDatabaseConfig() DatabaseConfig {
	driver := getEnvOrDefault("DATABASE_DRIVER", "sqlite")

	defaultDSN := "seo-optimizer.db"
	if driver == "postgres" {
		defaultDSN = ""
	}

	return DatabaseConfig{
		Driver: driver,
		DSN:    getEnvOrDefault("DATABASE_DSN", defaultDSN),
	}
}

// FetcherConfig bounds outbound page fetches.
type FetcherConfig struct {
	TimeoutSeconds int
}

func loadFetcherConfig() (FetcherConfig, error) {
	timeout, err := parseOptionalIntEnv("FETCH_TIMEOUT_SECONDS")
	if err != nil {
		return FetcherConfig{}, err
	}

	timeoutSeconds := 15
	if timeout != nil && *timeout > 0 {
		timeoutSeconds = *timeout
	}

	return FetcherConfig{TimeoutSeconds: timeoutSeconds}, nil
}

// AuthConfig holds the bearer-token verification secret. When empty, tokens
// are parsed without signature verification (local development only).
type AuthConfig struct {
	JWTSecret string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
