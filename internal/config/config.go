package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendGemini  = "gemini"
	BackendOpenAI  = "openai"
	BackendCommand = "command"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Summary     SummaryConfig     `yaml:"summary"`
	Backends    BackendsConfig    `yaml:"backends"`
	Inbox       InboxConfig       `yaml:"inbox"`
	Hub         HubConfig         `yaml:"hub"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"gin_mode"`
}

type SummaryConfig struct {
	MinWords  int `yaml:"min_words"`
	QueueSize int `yaml:"queue_size"`
}

type BackendsConfig struct {
	// Order lists backends to probe at startup; the first available one
	// becomes the abstractive strategy.
	Order          []string      `yaml:"order"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Gemini         GeminiConfig  `yaml:"gemini"`
	OpenAI         OpenAIConfig  `yaml:"openai"`
	Command        CommandConfig `yaml:"command"`
}

type GeminiConfig struct {
	Model         string   `yaml:"model"`
	MaxInputWords int      `yaml:"max_input_words"`
	APIKeys       []string `yaml:"-"`
}

type OpenAIConfig struct {
	Model         string `yaml:"model"`
	MaxInputWords int    `yaml:"max_input_words"`
	APIKey        string `yaml:"-"`
}

type CommandConfig struct {
	BinaryPath    string   `yaml:"binary_path"`
	Args          []string `yaml:"args"`
	MaxInputWords int      `yaml:"max_input_words"`
}

type InboxConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Dir            string `yaml:"dir"`
	Archived       string `yaml:"archived"`
	DefaultSpeaker string `yaml:"default_speaker"`
}

type HubConfig struct {
	SendBuffer int `yaml:"send_buffer"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads the YAML file at path, pulls secrets from the environment and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Backends.Gemini.APIKeys = splitKeys(os.Getenv("GEMINI_API_KEYS"))
	cfg.Backends.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Summary.MinWords < 0 {
		return fmt.Errorf("summary.min_words must not be negative")
	}
	if c.Summary.QueueSize < 0 {
		return fmt.Errorf("summary.queue_size must not be negative")
	}
	for _, name := range c.Backends.Order {
		switch name {
		case BackendGemini, BackendOpenAI, BackendCommand:
		default:
			return fmt.Errorf("backends.order: unknown backend %q", name)
		}
	}
	if c.Inbox.Enabled && c.Inbox.Dir == "" {
		return fmt.Errorf("inbox.dir is required when inbox is enabled")
	}
	// A new client is sent the transcript and the summary before its writer runs.
	if c.Hub.SendBuffer < 0 || c.Hub.SendBuffer == 1 {
		return fmt.Errorf("hub.send_buffer must be at least 2, got %d", c.Hub.SendBuffer)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Summary.MinWords == 0 {
		c.Summary.MinWords = 10
	}
	if c.Summary.QueueSize == 0 {
		c.Summary.QueueSize = 1
	}
	if c.Backends.TimeoutSeconds == 0 {
		c.Backends.TimeoutSeconds = 30
	}
	if c.Backends.Gemini.Model == "" {
		c.Backends.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Backends.Gemini.MaxInputWords == 0 {
		c.Backends.Gemini.MaxInputWords = 20000
	}
	if c.Backends.OpenAI.Model == "" {
		c.Backends.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Backends.OpenAI.MaxInputWords == 0 {
		c.Backends.OpenAI.MaxInputWords = 8000
	}
	if c.Backends.Command.MaxInputWords == 0 {
		c.Backends.Command.MaxInputWords = 700
	}
	if c.Inbox.Archived == "" {
		c.Inbox.Archived = "data/archived"
	}
	if c.Inbox.DefaultSpeaker == "" {
		c.Inbox.DefaultSpeaker = "Unknown"
	}
	if c.Hub.SendBuffer == 0 {
		c.Hub.SendBuffer = 16
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// BackendTimeout is the per-call deadline for abstractive backends.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backends.TimeoutSeconds) * time.Second
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
