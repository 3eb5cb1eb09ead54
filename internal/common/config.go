package common

import (
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is the deployed extraction backend used when nothing else applies.
const DefaultAPIURL = "https://my-react-app-weo4.onrender.com"

// LocalAPIPort is where the backend listens on a developer machine or LAN host.
const LocalAPIPort = "8102"

// Config holds all application configuration
type Config struct {
	Client ClientConfig
	Ingest IngestConfig
	Server ServerConfig
	LLM    LLMConfig
	Log    LogConfig
}

// ClientConfig holds extraction-client configuration
type ClientConfig struct {
	// BaseURL is the explicit override; empty means resolve from Host.
	BaseURL string
	Host    string
	Timeout time.Duration
}

// IngestConfig holds image ingestion configuration
type IngestConfig struct {
	MaxImageMB    int
	ConvertHEIC   bool
	HeicConverter string
}

// ServerConfig holds backend HTTP server configuration
type ServerConfig struct {
	HTTPAddr    string
	CORSOrigins []string
	RateLimit   int
}

// LLMConfig holds the backend's vision-model configuration
type LLMConfig struct {
	Provider     string
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
	GeminiAPIKey string
	GeminiModel  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

var defaultOrigins = []string{
	"https://smart-doc-five.vercel.app",
	"https://licenseee-lovat.vercel.app",
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// LoadConfig loads configuration from environment variables and, when path is
// non-empty, from a YAML/TOML/JSON file whose keys mirror the variable names.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("EXTRACTOR_API_URL", "")
	v.SetDefault("EXTRACTOR_HOST", "")
	v.SetDefault("EXTRACTOR_TIMEOUT", 60*time.Second)
	v.SetDefault("MAX_IMAGE_MB", 10)
	v.SetDefault("CONVERT_HEIC", true)
	v.SetDefault("HEIC_CONVERTER", "magick")
	v.SetDefault("HTTP_ADDR", ":"+LocalAPIPort)
	v.SetDefault("CORS_ORIGINS", strings.Join(defaultOrigins, ","))
	v.SetDefault("RATE_LIMIT", 0)
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("OPENAI_MODEL", "openai/gpt-4o-mini")
	v.SetDefault("OPENAI_TEMPERATURE", 0.2)
	v.SetDefault("OPENAI_MAX_TOKENS", 1024)
	v.SetDefault("OPENAI_TIMEOUT", 45*time.Second)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError("CONFIG_ERROR", "read config file "+path, err)
		}
	}

	return &Config{
		Client: ClientConfig{
			BaseURL: strings.TrimSpace(v.GetString("EXTRACTOR_API_URL")),
			Host:    strings.TrimSpace(v.GetString("EXTRACTOR_HOST")),
			Timeout: v.GetDuration("EXTRACTOR_TIMEOUT"),
		},
		Ingest: IngestConfig{
			MaxImageMB:    v.GetInt("MAX_IMAGE_MB"),
			ConvertHEIC:   v.GetBool("CONVERT_HEIC"),
			HeicConverter: v.GetString("HEIC_CONVERTER"),
		},
		Server: ServerConfig{
			HTTPAddr:    v.GetString("HTTP_ADDR"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
			RateLimit:   v.GetInt("RATE_LIMIT"),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			APIKey:       v.GetString("OPENAI_API_KEY"),
			BaseURL:      v.GetString("OPENAI_BASE_URL"),
			Model:        v.GetString("OPENAI_MODEL"),
			Temperature:  float32(v.GetFloat64("OPENAI_TEMPERATURE")),
			MaxTokens:    v.GetInt("OPENAI_MAX_TOKENS"),
			Timeout:      v.GetDuration("OPENAI_TIMEOUT"),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			GeminiModel:  v.GetString("GEMINI_MODEL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}, nil
}

// APIBaseURL resolves the extraction backend for this configuration.
func (c *Config) APIBaseURL() string {
	return ResolveBaseURL(c.Client.BaseURL, c.Client.Host)
}

// ResolveBaseURL picks the backend URL: explicit override first, then a local
// backend for loopback/LAN hosts, otherwise the deployed default.
func ResolveBaseURL(override, host string) string {
	if o := strings.TrimSpace(override); o != "" {
		return strings.TrimRight(o, "/")
	}
	if isLocalHost(host) {
		return "http://" + net.JoinHostPort(host, LocalAPIPort)
	}
	return DefaultAPIURL
}

func isLocalHost(host string) bool {
	host = strings.TrimSpace(host)
	if host == "" {
		return false
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate()
}

// ValidateServer validates the configuration needed by the extraction backend
func (c *Config) ValidateServer() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.APIKey == "" {
			return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
		}
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "LLM_PROVIDER must be openai or gemini", ErrInvalidInput)
	}
	return nil
}

// ValidateClient validates the configuration needed by the extraction client
func (c *Config) ValidateClient() error {
	if c.Client.Timeout < 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACTOR_TIMEOUT must not be negative", ErrInvalidInput)
	}
	if c.Ingest.MaxImageMB <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_IMAGE_MB must be positive", ErrInvalidInput)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
