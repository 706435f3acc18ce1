package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissing is returned when a required setting is absent.
var ErrMissing = errors.New("required setting is not set")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminID       int64

	LLM  LLMConfig
	DB   DBConfig
	HTTP HTTPConfig
	S3   S3Config

	AssistantName     string
	ContextLimit      int
	PersonaPromptFile string
	LogLevel          string
}

// LLMConfig holds the completion service configuration
type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

type DBConfig struct {
	URL        string // postgres DSN; empty means sqlite
	SQLitePath string
}

type HTTPConfig struct {
	Port          string
	AdminPassword string
	AuthSecret    string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

// Enabled reports whether history archiving to S3 is configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("llm_provider", ProviderGemini)
	v.SetDefault("sqlite_path", "db.db")
	v.SetDefault("assistant_name", "Scarlet")
	v.SetDefault("context_limit", 10)
	v.SetDefault("port", "8080")
	v.SetDefault("s3_secure", true)
	v.SetDefault("log_level", "info")

	cfg := &Config{
		TelegramToken: v.GetString("telegram_bot_token"),
		LLM: LLMConfig{
			Provider: strings.ToLower(v.GetString("llm_provider")),
			BaseURL:  v.GetString("llm_base_url"),
			Model:    v.GetString("llm_model"),
		},
		DB: DBConfig{
			URL:        v.GetString("database_url"),
			SQLitePath: v.GetString("sqlite_path"),
		},
		HTTP: HTTPConfig{
			Port:          v.GetString("port"),
			AdminPassword: v.GetString("admin_api_password"),
			AuthSecret:    v.GetString("auth_secret"),
		},
		S3: S3Config{
			Endpoint:  v.GetString("s3_endpoint"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
			Bucket:    v.GetString("s3_bucket"),
			Region:    v.GetString("s3_region"),
			Secure:    v.GetBool("s3_secure"),
		},
		AssistantName:     v.GetString("assistant_name"),
		ContextLimit:      v.GetInt("context_limit"),
		PersonaPromptFile: v.GetString("persona_prompt_file"),
		LogLevel:          v.GetString("log_level"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_BOT_TOKEN", ErrMissing)
	}

	adminRaw := strings.TrimSpace(v.GetString("telegram_admin_id"))
	if adminRaw == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_ADMIN_ID", ErrMissing)
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_ADMIN_ID must be an integer: %w", err)
	}
	cfg.AdminID = adminID

	switch cfg.LLM.Provider {
	case ProviderGemini:
		cfg.LLM.APIKey = v.GetString("google_api_key")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("%w: GOOGLE_API_KEY", ErrMissing)
		}
	case ProviderOpenAI:
		cfg.LLM.APIKey = v.GetString("openai_api_key")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissing)
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLM.Provider)
	}

	if cfg.ContextLimit <= 0 {
		cfg.ContextLimit = 10
	}
	if cfg.HTTP.AuthSecret == "" {
		cfg.HTTP.AuthSecret = cfg.TelegramToken
	}

	return cfg, nil
}
