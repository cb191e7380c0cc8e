package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"resume-builder/internal/logger"
)

const (
	BackendGemini  = "gemini"
	BackendService = "service"

	ExtractorLedongthuc = "ledongthuc"
	ExtractorEino       = "eino"
)

type AIConfig struct {
	Backend    string
	APIKey     string
	Model      string
	ServiceURL string
	Timeout    time.Duration
}

type Config struct {
	Port           string
	AI             AIConfig
	ChromePath     string
	ExportScale    float64
	PDFExtractor   string
	UploadMaxBytes int
	NoticeDelay    time.Duration
	Log            logger.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("ai.backend", BackendGemini)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.service_url", "http://ai-service:8000")
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("chrome.path", "")
	v.SetDefault("export.scale", 2.0)
	v.SetDefault("pdf.extractor", ExtractorLedongthuc)
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("notice.delay", "4s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.report_caller", false)
}

// Load reads configuration from .env, the environment and, when path is not
// empty, a YAML/JSON config file. Environment variables win over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", "API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port: v.GetString("port"),
		AI: AIConfig{
			Backend:    strings.ToLower(v.GetString("ai.backend")),
			APIKey:     v.GetString("ai.api_key"),
			Model:      v.GetString("ai.model"),
			ServiceURL: v.GetString("ai.service_url"),
			Timeout:    v.GetDuration("ai.timeout"),
		},
		ChromePath:     v.GetString("chrome.path"),
		ExportScale:    v.GetFloat64("export.scale"),
		PDFExtractor:   strings.ToLower(v.GetString("pdf.extractor")),
		UploadMaxBytes: v.GetInt("upload.max_bytes"),
		NoticeDelay:    v.GetDuration("notice.delay"),
		Log: logger.Config{
			Level:        v.GetString("log.level"),
			Format:       v.GetString("log.format"),
			ReportCaller: v.GetBool("log.report_caller"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	switch c.AI.Backend {
	case BackendGemini:
		if c.AI.APIKey == "" {
			return &ConfigError{Field: "API_KEY", Message: "API_KEY (or GEMINI_API_KEY) is required for the gemini backend"}
		}
	case BackendService:
		if c.AI.ServiceURL == "" {
			return &ConfigError{Field: "AI_SERVICE_URL", Message: "AI_SERVICE_URL is required for the service backend"}
		}
	default:
		return &ConfigError{Field: "AI_BACKEND", Message: fmt.Sprintf("unsupported AI backend %q", c.AI.Backend)}
	}
	switch c.PDFExtractor {
	case ExtractorLedongthuc, ExtractorEino:
	default:
		return &ConfigError{Field: "PDF_EXTRACTOR", Message: fmt.Sprintf("unsupported PDF extractor %q", c.PDFExtractor)}
	}
	if c.ExportScale <= 0 {
		return &ConfigError{Field: "EXPORT_SCALE", Message: "EXPORT_SCALE must be positive"}
	}
	if c.UploadMaxBytes <= 0 {
		return &ConfigError{Field: "UPLOAD_MAX_BYTES", Message: "UPLOAD_MAX_BYTES must be positive"}
	}
	return nil
}

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
