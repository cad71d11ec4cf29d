package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "promptdoc/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for the chat-completion backend.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the OpenAI-compatible API root (e.g. "https://api.x.ai/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the chat model identifier (e.g. "grok-2-1212").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the chat API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length (default 1000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FormatConfig holds settings for the document formatter.
type FormatConfig struct {
	// Spacing is "single" or "double".
	Spacing string `json:"spacing" yaml:"spacing"`

	// StylesFile is an optional YAML file of style overrides.
	StylesFile string `json:"styles_file,omitempty" yaml:"styles_file,omitempty"`

	// SectionKeywords replaces the built-in whole-line heading keywords.
	SectionKeywords []string `json:"section_keywords,omitempty" yaml:"section_keywords,omitempty"`
}

// DocsConfig holds settings for the document service.
type DocsConfig struct {
	// ClientSecretFile is the OAuth client secret JSON.
	ClientSecretFile string `json:"client_secret_file" yaml:"client_secret_file"`

	// TokenFile is the stored OAuth token JSON.
	TokenFile string `json:"token_file" yaml:"token_file"`

	// Share grants anyone-with-the-link read access after creation (default true).
	Share bool `json:"share" yaml:"share"`
}

// HistoryConfig holds settings for the published-document history.
type HistoryConfig struct {
	// Dir contains history.db.
	Dir string `json:"dir" yaml:"dir"`
}

// ServerConfig holds settings for the HTTP front end.
type ServerConfig struct {
	// Addr is the listen address (default ":5050").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all component configurations.
type Config struct {
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Format  FormatConfig  `json:"format" yaml:"format"`
	Docs    DocsConfig    `json:"docs" yaml:"docs"`
	History HistoryConfig `json:"history" yaml:"history"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
