// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StoreConfig holds settings for the document store.
type StoreConfig struct {
	// Dir is the flat directory holding uploaded PDFs, derived .txt files,
	// filled templates, and generated PDFs.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative     ExtractionBackend = "native"
	BackendMarkitdown ExtractionBackend = "markitdown"
)

// ExtractionConfig holds settings for PDF text extraction.
type ExtractionConfig struct {
	// Backend selects the extraction tool: native or markitdown.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the container image used by the markitdown backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "doc-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LLMProvider identifies the chat completion API.
type LLMProvider string

const (
	ProviderOpenAI    LLMProvider = "openai"
	ProviderAnthropic LLMProvider = "anthropic"
)

// LLMConfig holds settings for the external language model.
type LLMConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the chat completion API: openai or anthropic.
	Provider LLMProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gpt-5").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL overrides the provider endpoint root.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is sent when non-zero; zero leaves the provider default.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the completion length (anthropic requires it).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// MaxRetries is the number of retries after a transient LLM failure
	// (default 3). Zero sends each request once.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// PDFConfig holds the geometry and font used to render text as PDF.
type PDFConfig struct {
	PageGeometry `yaml:",inline" mapstructure:",squash"`

	// FontFamily is a core PDF font (Helvetica, Courier, Times).
	FontFamily string `json:"font_family" yaml:"font_family" mapstructure:"font_family"`

	// FontSize is the font size in points.
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// JournalConfig holds settings for the interaction journal.
type JournalConfig struct {
	// Enabled turns recording of LLM interactions on or off.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file. Empty means <store dir>/.journal.db.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// AppConfig groups every component configuration. It is built once by the
// entry point and passed to each constructor.
type AppConfig struct {
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	LLM        LLMConfig        `json:"llm" yaml:"llm" mapstructure:"llm"`
	PDF        PDFConfig        `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Journal    JournalConfig    `json:"journal" yaml:"journal" mapstructure:"journal"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() AppConfig {
	return AppConfig{
		Store: StoreConfig{Dir: "uploads"},
		Extraction: ExtractionConfig{
			Backend: BackendNative,
			Image:   "markitdown:latest",
		},
		LLM: LLMConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "doc-assistant/0.1",
			},
			Provider:   ProviderOpenAI,
			Model:      "gpt-5",
			MaxTokens:  4096,
			MaxRetries: 3,
		},
		PDF: PDFConfig{
			PageGeometry: A4Geometry(),
			FontFamily:   "Helvetica",
			FontSize:     11,
		},
		Journal: JournalConfig{Enabled: true},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}
