package audio

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider interface for Gemini speech generation
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(ctx context.Context, config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	format := strings.ToLower(config.OutputFormat)
	if format != "" && format != "mp3" && format != "wav" {
		return nil, fmt.Errorf("unsupported Gemini output format: %s", config.OutputFormat)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeminiBaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Fetch generates speech for text. Gemini returns raw PCM which is wrapped
// into WAV and, for mp3 output, converted with ffmpeg.
func (p *GeminiProvider) Fetch(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text, p.config.Language); err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(p.prompt(text)), p.generateConfig())
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	pcm, mimeType := extractAudio(resp)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio data received from Gemini")
	}

	wav := EncodeWAV(pcm, pcmSampleRate(mimeType))
	if p.Extension() == "wav" {
		return wav, nil
	}
	return convertWAVToMP3(ctx, wav)
}

func (p *GeminiProvider) prompt(text string) string {
	if p.config.GeminiInstruction == "" {
		return text
	}
	return fmt.Sprintf("%s: %s", p.config.GeminiInstruction, text)
}

func (p *GeminiProvider) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: p.config.GeminiLanguage,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.config.GeminiVoice,
				},
			},
		},
	}
}

// extractAudio concatenates all inline audio parts of the first candidate
func extractAudio(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ""
	}

	var data []byte
	var mimeType string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		if mimeType == "" {
			mimeType = part.InlineData.MIMEType
		}
		data = append(data, part.InlineData.Data...)
	}
	return data, mimeType
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API key is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

// Extension returns the configured output format
func (p *GeminiProvider) Extension() string {
	if strings.EqualFold(p.config.OutputFormat, "wav") {
		return "wav"
	}
	return "mp3"
}
