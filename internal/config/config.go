package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultGeminiModels is the preference order tried by the analysis resolver.
var DefaultGeminiModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.5-flash-lite",
	"gemini-pro",
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type GeminiConfig struct {
	APIKey          string        `yaml:"api_key"`
	Models          []string      `yaml:"models"`
	Timeout         time.Duration `yaml:"timeout"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	QPS             float64       `yaml:"qps"`
}

type StorageConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment (including .env), in increasing precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			log.Printf("⚠️  Ignoring config file %s: %v", path, err)
		}
	}

	applyEnv(cfg)
	return cfg
}

// HasGeminiCredential reports whether real upstream calls should be attempted.
func (c *Config) HasGeminiCredential() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3000",
			Env:  "development",
		},
		Gemini: GeminiConfig{
			Models:          append([]string(nil), DefaultGeminiModels...),
			Timeout:         15 * time.Second,
			Temperature:     0.1,
			MaxOutputTokens: 2000,
		},
		Storage: StorageConfig{
			MaxFileSize: 10 * 1024 * 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("ENV", cfg.Server.Env)

	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Models = getEnvAsList("GEMINI_MODELS", cfg.Gemini.Models)
	cfg.Gemini.Timeout = getEnvAsDuration("GEMINI_TIMEOUT", cfg.Gemini.Timeout)
	cfg.Gemini.Temperature = getEnvAsFloat32("GEMINI_TEMPERATURE", cfg.Gemini.Temperature)
	cfg.Gemini.MaxOutputTokens = int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", int(cfg.Gemini.MaxOutputTokens)))
	cfg.Gemini.QPS = getEnvAsFloat64("GEMINI_QPS", cfg.Gemini.QPS)

	cfg.Storage.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", cfg.Storage.MaxFileSize)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
