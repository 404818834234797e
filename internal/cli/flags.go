package cli

import (
	"time"

	"codeberg.org/snonux/bopomofo/internal/audio"
	"codeberg.org/snonux/bopomofo/internal/remote"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile                string
	OutputDir              string
	TableFile              string
	Categories             []string
	Verbose                bool
	Archive                bool
	MaxConsecutiveFailures uint32

	// Download flags
	BaseURL        string
	RemoteFileName string
	Timeout        time.Duration

	// Generate flags
	Provider         string
	FallbackProvider string
	Language         string
	AudioFormat      string
	ProviderURL      string
	ListModels       bool

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel    string
	GeminiVoice    string
	GeminiLanguage string

	// espeak-ng flags
	ESpeakVoice string
	ESpeakSpeed int

	// Anki flags
	DeckName   string
	AnkiCSV    bool
	AnkiOutput string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	audioDefaults := audio.DefaultProviderConfig()
	remoteDefaults := remote.DefaultOptions()

	return &Flags{
		OutputDir:         "audio",
		BaseURL:           remoteDefaults.BaseURL,
		RemoteFileName:    remoteDefaults.FileName,
		Timeout:           remoteDefaults.Timeout,
		Provider:          audioDefaults.Provider,
		Language:          audioDefaults.Language,
		AudioFormat:       audioDefaults.OutputFormat,
		OpenAIModel:       audioDefaults.OpenAIModel,
		OpenAIVoice:       audioDefaults.OpenAIVoice,
		OpenAISpeed:       audioDefaults.OpenAISpeed,
		OpenAIInstruction: audioDefaults.OpenAIInstruction,
		GeminiModel:       audioDefaults.GeminiModel,
		GeminiVoice:       audioDefaults.GeminiVoice,
		GeminiLanguage:    audioDefaults.GeminiLanguage,
		ESpeakVoice:       audioDefaults.ESpeakVoice,
		ESpeakSpeed:       audioDefaults.ESpeakSpeed,
		DeckName:          "Bopomofo",
	}
}

// AudioConfig builds the provider configuration for provider from the flags
func (f *Flags) AudioConfig(provider string) *audio.Config {
	config := audio.DefaultProviderConfig()

	config.Provider = provider
	config.Language = f.Language
	config.OutputFormat = f.AudioFormat

	// Endpoint override, e.g. for a proxy
	if f.ProviderURL != "" {
		config.GoogleBaseURL = f.ProviderURL
		config.OpenAIBaseURL = f.ProviderURL
		config.GeminiBaseURL = f.ProviderURL
	}

	config.OpenAIKey = GetOpenAIKey()
	config.OpenAIModel = f.OpenAIModel
	config.OpenAIVoice = f.OpenAIVoice
	config.OpenAISpeed = f.OpenAISpeed
	config.OpenAIInstruction = f.OpenAIInstruction

	config.GeminiKey = GetGeminiKey()
	config.GeminiModel = f.GeminiModel
	config.GeminiVoice = f.GeminiVoice
	config.GeminiLanguage = f.GeminiLanguage

	config.ESpeakVoice = f.ESpeakVoice
	config.ESpeakSpeed = f.ESpeakSpeed

	return config
}

// RemoteOptions builds the GCIN client options from the flags
func (f *Flags) RemoteOptions() *remote.Options {
	return &remote.Options{
		BaseURL:  f.BaseURL,
		FileName: f.RemoteFileName,
		Timeout:  f.Timeout,
	}
}
