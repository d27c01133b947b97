package llm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`

	// Generation holds the sampling parameters shared by all providers.
	Generation GenerationConfig `yaml:"generation"`

	// Timeout bounds a single CLI request. The invoker itself imposes no
	// timeout; callers wrap it in a context. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "models/gemini-pro"
	BaseURL string `yaml:"base_url"` // Optional. Override for proxies and tests.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"` // Default: "claude-haiku"
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: DefaultModel,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Generation: DefaultGenerationConfig(),
		Timeout:    60 * time.Second,
	}
}

// LoadConfig builds a Config from defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if p := os.Getenv("ASKFRAME_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("ASKFRAME_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("ASKFRAME_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("ASKFRAME_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("ASKFRAME_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("ASKFRAME_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("ASKFRAME_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("ASKFRAME_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("ASKFRAME_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("ASKFRAME_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	var errs []error
	envFloat := func(name string, dst *float64) {
		if v := os.Getenv(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = f
		}
	}
	envFloat("ASKFRAME_TEMPERATURE", &cfg.Generation.Temperature)
	envFloat("ASKFRAME_TOP_P", &cfg.Generation.TopP)
	envFloat("ASKFRAME_TOP_K", &cfg.Generation.TopK)

	if v := os.Getenv("ASKFRAME_MAX_OUTPUT_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ASKFRAME_MAX_OUTPUT_TOKENS: %w", err))
		} else {
			cfg.Generation.MaxOutputTokens = n
		}
	}

	return errors.Join(errs...)
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a default Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if !cfg.Discover() {
		return Config{}, false
	}
	return cfg, true
}

// Discover selects the first provider, in DiscoverConfig's order, whose
// standard API key env var is set, and stores that key. Every other field
// is left alone. It reports whether a key was found.
func (c *Config) Discover() bool {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = "gemini"
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = "openai"
		c.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = "anthropic"
		c.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = "openrouter"
		c.OpenRouter.APIKey = k
		return true
	}
	return false
}

// Credentials returns the API key and model of the selected provider. The
// mock provider needs no key and reports "mock" for both.
func (c Config) Credentials() (apiKey, model string) {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey, c.Gemini.Model
	case "anthropic":
		return c.Anthropic.APIKey, c.Anthropic.Model
	case "openai":
		return c.OpenAI.APIKey, c.OpenAI.Model
	case "openrouter":
		return c.OpenRouter.APIKey, c.OpenRouter.Model
	case "mock":
		return "mock", "mock"
	}
	return "", ""
}

// Validate checks that the selected provider is known and has its API key.
// Generation parameters are checked per call by the Invoker, not here.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "anthropic", "openai", "openrouter":
		if key, _ := c.Credentials(); key == "" {
			return &CredentialError{Provider: c.Provider}
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
