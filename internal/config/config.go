package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Speech SpeechConfig
	Credit CreditConfig
	Reply  ReplyConfig
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

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	credit, err := loadCreditConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Speech: speech,
		Credit: credit,
		Reply:  loadReplyConfig(),
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
		// Allow ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the reply-generation model.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required model credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel instantiates the configured chat model.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("model credentials missing: provide ARK_API_KEY + Model or AK/SK")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// SpeechConfig describes the text-to-speech backend.
type SpeechConfig struct {
	BaseURL string
	Token   string
	Voice   string
	Timeout time.Duration
	Enabled bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	baseURL := strings.TrimSpace(os.Getenv("SPEECH_BASE_URL"))

	return SpeechConfig{
		BaseURL: baseURL,
		Token:   strings.TrimSpace(os.Getenv("SPEECH_API_KEY")),
		Voice:   getEnvOrDefault("SPEECH_TTS_VOICE", "21m00Tcm4TlvDq8ikWAM"),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
		Enabled: baseURL != "",
	}, nil
}

// CreditConfig describes the credit ledger. When BaseURL is empty the
// service runs its own in-process ledger.
type CreditConfig struct {
	FreeAllowance int
	BaseURL       string
	Token         string
	Timeout       time.Duration
}

func loadCreditConfig() (CreditConfig, error) {
	allowance := 12
	if override, err := parseOptionalIntEnv("CREDIT_FREE_ALLOWANCE"); err != nil {
		return CreditConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return CreditConfig{}, fmt.Errorf("CREDIT_FREE_ALLOWANCE must not be negative")
		}
		allowance = *override
	}

	timeout, err := parseOptionalIntEnv("CREDIT_TIMEOUT")
	if err != nil {
		return CreditConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return CreditConfig{
		FreeAllowance: allowance,
		BaseURL:       strings.TrimSpace(os.Getenv("CREDIT_BASE_URL")),
		Token:         strings.TrimSpace(os.Getenv("CREDIT_API_KEY")),
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ReplyConfig points at an external reply backend, used when the local
// model is not configured.
type ReplyConfig struct {
	BaseURL string
	Token   string
}

func loadReplyConfig() ReplyConfig {
	return ReplyConfig{
		BaseURL: strings.TrimSpace(os.Getenv("REPLY_BASE_URL")),
		Token:   strings.TrimSpace(os.Getenv("REPLY_API_KEY")),
	}
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
