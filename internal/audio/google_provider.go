package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	googleTTSURL     = "https://translate.google.com/translate_tts"
	googleTimeout    = 30 * time.Second
	googleMaxClipLen = 5 * 1024 * 1024
)

// GoogleProvider implements Provider using the Google Translate speech
// endpoint, the same service the gTTS tools talk to
type GoogleProvider struct {
	config     *Config
	baseURL    string
	httpClient *http.Client
}

// NewGoogleProvider creates a new Google Translate TTS provider
func NewGoogleProvider(config *Config) (Provider, error) {
	if config.Language == "" {
		return nil, fmt.Errorf("language is required")
	}

	baseURL := config.GoogleBaseURL
	if baseURL == "" {
		baseURL = googleTTSURL
	}

	return &GoogleProvider{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: googleTimeout,
		},
	}, nil
}

// Fetch requests an mp3 clip for text
func (p *GoogleProvider) Fetch(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text, p.config.Language); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.requestURL(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The endpoint rejects requests without a browser-like agent
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Google TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Google TTS error: HTTP %d for language %s", resp.StatusCode, p.config.Language)
	}

	// Read one byte past the limit to detect oversized clips
	data, err := io.ReadAll(io.LimitReader(resp.Body, googleMaxClipLen+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) > googleMaxClipLen {
		return nil, fmt.Errorf("Google TTS clip exceeds maximum size of %d bytes", googleMaxClipLen)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from Google TTS")
	}

	return data, nil
}

func (p *GoogleProvider) requestURL(text string) string {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", p.config.Language)
	params.Set("q", text)
	params.Set("total", "1")
	params.Set("idx", "0")
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))
	return p.baseURL + "?" + params.Encode()
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks that a language is configured; the endpoint needs no key
func (p *GoogleProvider) IsAvailable() error {
	if p.config.Language == "" {
		return fmt.Errorf("language not configured")
	}
	return nil
}

// Extension returns "mp3"
func (p *GoogleProvider) Extension() string {
	return "mp3"
}
