package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the public API.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// SpeechModels returns the sorted IDs of text-to-speech and audio models
func (l *Lister) SpeechModels(ctx context.Context) (tts, audio []string, err error) {
	if l.apiKey == "" {
		return nil, nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .bopomofo.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range models.Models {
		switch {
		case strings.Contains(model.ID, "tts"):
			tts = append(tts, model.ID)
		case strings.Contains(model.ID, "audio"):
			audio = append(audio, model.ID)
		}
	}

	sort.Strings(tts)
	sort.Strings(audio)
	return tts, audio, nil
}

// ListAvailableModels prints the speech models to out
func (l *Lister) ListAvailableModels(ctx context.Context, out io.Writer) error {
	tts, audio, err := l.SpeechModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Available OpenAI Models:")
	fmt.Fprintln(out, "\nText-to-Speech (TTS) Models:")
	if len(tts) == 0 {
		fmt.Fprintln(out, "  No TTS models found")
	} else {
		for _, model := range tts {
			fmt.Fprintf(out, "  %s\n", model)
		}
	}

	if len(audio) > 0 {
		fmt.Fprintln(out, "\nAudio Models:")
		for _, model := range audio {
			fmt.Fprintf(out, "  %s\n", model)
		}
	}

	return nil
}
