package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Fetch synthesizes text and returns the encoded audio
	Fetch(ctx context.Context, text string) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error

	// Extension returns the file extension of the produced audio
	Extension() string
}

// Config holds common configuration for audio providers
type Config struct {
	Provider     string // "google", "openai", "gemini" or "espeak"
	Language     string // Language tag sent to the provider, e.g. "zh-TW"
	OutputFormat string // "mp3" or "wav" (openai also: opus, aac, flac)

	// Google translate TTS settings
	GoogleBaseURL string

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // Empty for the public API
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "nova", ...
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// Gemini-specific settings
	GeminiKey         string
	GeminiBaseURL     string // Empty for the public API
	GeminiModel       string
	GeminiVoice       string
	GeminiLanguage    string // Gemini uses its own codes, e.g. "cmn-CN"
	GeminiInstruction string

	// espeak-ng settings
	ESpeakBinary string
	ESpeakVoice  string // e.g. "cmn" or "yue"
	ESpeakSpeed  int    // Words per minute
	ESpeakPitch  int    // 0 to 99
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "google",
		Language:          "zh-TW",
		OutputFormat:      "mp3",
		GoogleBaseURL:     googleTTSURL,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Speak Mandarin Chinese as taught in Taiwan. Pronounce the Bopomofo syllable on its own, slowly and clearly, for a language learner.",
		GeminiModel:       "gemini-2.5-flash-preview-tts",
		GeminiVoice:       "Kore",
		GeminiLanguage:    "cmn-CN",
		GeminiInstruction: "Say clearly in Taiwanese Mandarin",
		ESpeakBinary:      "espeak-ng",
		ESpeakVoice:       "cmn",
		ESpeakSpeed:       120,
		ESpeakPitch:       50,
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "google", "":
		return NewGoogleProvider(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	case "espeak":
		return NewESpeakProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if
// primary fails. Both must produce the same audio format.
func NewProviderWithFallback(primary, fallback Provider, logger *zap.Logger) (Provider, error) {
	if primary.Extension() != fallback.Extension() {
		return nil, fmt.Errorf("fallback %s produces %s, primary %s produces %s",
			fallback.Name(), fallback.Extension(), primary.Name(), primary.Extension())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Fetch tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Fetch(ctx context.Context, text string) ([]byte, error) {
	data, err := p.primary.Fetch(ctx, text)
	if err == nil {
		return data, nil
	}

	p.logger.Warn("primary provider failed, falling back",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.Error(err))

	data, fallbackErr := p.fallback.Fetch(ctx, text)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%s: %v; %s: %w", p.primary.Name(), err, p.fallback.Name(), fallbackErr)
	}
	return data, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// Extension returns the shared file extension
func (p *ProviderWithFallback) Extension() string {
	return p.primary.Extension()
}
