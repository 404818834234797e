package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if _, err := speechResponseFormat(config.OutputFormat); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Fetch generates audio using OpenAI TTS
func (p *OpenAIProvider) Fetch(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text, p.config.Language); err != nil {
		return nil, err
	}

	format, err := speechResponseFormat(p.config.OutputFormat)
	if err != nil {
		return nil, err
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          p.preprocessText(text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: format,
	}

	// Only the gpt-4o family understands voice instructions
	if p.config.OpenAIInstruction != "" && p.supportsInstructions() {
		req.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") && p.supportsInstructions() {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would use credits, a key is enough for now
	return nil
}

// Extension returns the configured output format
func (p *OpenAIProvider) Extension() string {
	if p.config.OutputFormat == "" {
		return "mp3"
	}
	return strings.ToLower(p.config.OutputFormat)
}

func (p *OpenAIProvider) supportsInstructions() bool {
	return p.config.OpenAIModel == "gpt-4o-mini-tts" || p.config.OpenAIModel == "gpt-4o-mini-audio-preview"
}

// preprocessText strips whitespace and punctuation that should not be spoken
func (p *OpenAIProvider) preprocessText(text string) string {
	cleanedText := strings.TrimSpace(text)

	punctuationToRemove := []string{"!", "?", ".", ",", ";", ":", "\"", "'", "(", ")", "-", "。", "，", "、", "？", "！", "「", "」"}
	for _, punct := range punctuationToRemove {
		cleanedText = strings.ReplaceAll(cleanedText, punct, "")
	}

	return strings.TrimSpace(cleanedText)
}

// speechResponseFormat maps an output format to the API response format
func speechResponseFormat(format string) (openai.SpeechResponseFormat, error) {
	switch strings.ToLower(format) {
	case "mp3", "":
		return openai.SpeechResponseFormatMp3, nil
	case "wav":
		return openai.SpeechResponseFormatWav, nil
	case "opus":
		return openai.SpeechResponseFormatOpus, nil
	case "aac":
		return openai.SpeechResponseFormatAac, nil
	case "flac":
		return openai.SpeechResponseFormatFlac, nil
	default:
		return "", fmt.Errorf("unsupported OpenAI output format: %s", format)
	}
}
