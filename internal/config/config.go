package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort   string       `yaml:"port"`
	LedgerPath   string       `yaml:"ledger_path"`
	QuotesPath   string       `yaml:"quotes_path"`
	StaticDir    string       `yaml:"static_dir"`
	TempAudioDir string       `yaml:"temp_audio_dir"`
	TemplateDir  string       `yaml:"template_dir"`
	FFmpegPath   string       `yaml:"ffmpeg_path"`
	Speech       SpeechConfig `yaml:"speech"`
	LogLevel     string       `yaml:"log_level"`
	LogFormat    string       `yaml:"log_format"`
}

// SpeechConfig selects and configures the speech-to-text backend.
type SpeechConfig struct {
	Backend  string `yaml:"backend"` // "openai" or "whisper-server"
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

func Default() *Config {
	return &Config{
		ServerPort:   "5000",
		LedgerPath:   "dados/movimentos.csv",
		QuotesPath:   "dados/frases.txt",
		StaticDir:    "static",
		TempAudioDir: "temp_audio",
		TemplateDir:  "web/templates",
		FFmpegPath:   "ffmpeg",
		Speech: SpeechConfig{
			Backend:  "openai",
			URL:      "https://api.openai.com/v1",
			Model:    "whisper-1",
			Language: "pt-BR",
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ServerPort = getEnv("PORT", cfg.ServerPort)
	cfg.LedgerPath = getEnv("LEDGER_PATH", cfg.LedgerPath)
	cfg.QuotesPath = getEnv("QUOTES_PATH", cfg.QuotesPath)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.TempAudioDir = getEnv("TEMP_AUDIO_DIR", cfg.TempAudioDir)
	cfg.TemplateDir = getEnv("TEMPLATE_DIR", cfg.TemplateDir)
	cfg.FFmpegPath = getEnv("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.Speech.Backend = getEnv("STT_BACKEND", cfg.Speech.Backend)
	cfg.Speech.URL = getEnv("STT_URL", cfg.Speech.URL)
	cfg.Speech.APIKey = getEnv("STT_API_KEY", cfg.Speech.APIKey)
	cfg.Speech.Model = getEnv("STT_MODEL", cfg.Speech.Model)
	cfg.Speech.Language = getEnv("STT_LANGUAGE", cfg.Speech.Language)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535, got %q", c.ServerPort)
	}

	if c.LedgerPath == "" {
		return fmt.Errorf("ledger_path must not be empty")
	}

	switch c.Speech.Backend {
	case "openai", "whisper-server":
	default:
		return fmt.Errorf("speech.backend must be \"openai\" or \"whisper-server\", got %q", c.Speech.Backend)
	}

	if c.Speech.URL == "" {
		return fmt.Errorf("speech.url must not be empty")
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}

	return nil
}

// Addr is the listen address; the server binds on all interfaces.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.ServerPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
