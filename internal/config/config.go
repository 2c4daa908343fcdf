package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Image   ImageConfig
	Weather WeatherConfig
	Store   StoreConfig
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

	image := loadImageConfig()
	weather := loadWeatherConfig()

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Image: image, Weather: weather, Store: store}, nil
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
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the chat-completion model.
type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    *float64
	MaxTokens      *int
	StreamResponse bool
}

// Enabled reports whether the required OpenAI credentials are present.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// NewChatModel builds the eino chat model from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY and OPENAI_MODEL are required for AI features")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &openai.ChatModelConfig{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return openai.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("OPENAI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}
	if temperature == nil {
		defaultTemp := 0.7
		temperature = &defaultTemp
	}

	maxTokens, err := parseOptionalIntEnv("OPENAI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	stream, err := parseBoolEnv("OPENAI_STREAM", true)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:        getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:          getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		StreamResponse: stream,
	}, nil
}

// ImageConfig describes the avatar generation model.
type ImageConfig struct {
	Model   string
	Size    string
	Quality string
}

func loadImageConfig() ImageConfig {
	return ImageConfig{
		Model:   getEnvOrDefault("IMAGE_MODEL", "dall-e-2"),
		Size:    getEnvOrDefault("IMAGE_SIZE", "1024x1024"),
		Quality: getEnvOrDefault("IMAGE_QUALITY", "standard"),
	}
}

// WeatherConfig describes the OpenWeatherMap client.
type WeatherConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled reports whether weather lookups are configured.
func (c WeatherConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadWeatherConfig() WeatherConfig {
	return WeatherConfig{
		APIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		BaseURL: getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
	}
}

// StoreConfig tunes the in-memory verification cache and session store.
type StoreConfig struct {
	VerifyCacheTTL      time.Duration
	SessionTTL          time.Duration
	SessionReapInterval time.Duration
}

func loadStoreConfig() (StoreConfig, error) {
	verifyTTL, err := parseDurationEnv("VERIFY_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return StoreConfig{}, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return StoreConfig{}, err
	}

	reapInterval, err := parseDurationEnv("SESSION_REAP_INTERVAL", 10*time.Minute)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		VerifyCacheTTL:      verifyTTL,
		SessionTTL:          sessionTTL,
		SessionReapInterval: reapInterval,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
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
