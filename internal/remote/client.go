package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://audreyt.github.io/gcin-voice-data/mp3"
	DefaultFileName = "3.mp3"

	defaultTimeout = 30 * time.Second
	defaultMaxSize = 10 * 1024 * 1024 // 10MB
)

// Options configures the mirror client
type Options struct {
	BaseURL      string        // Mirror root without trailing slash
	FileName     string        // File inside each syllable folder
	Timeout      time.Duration // Per request timeout
	MaxSizeBytes int64         // Maximum body size to accept (0 = no limit)
	UserAgent    string
}

// DefaultOptions returns the settings for the public GCIN mirror
func DefaultOptions() *Options {
	return &Options{
		BaseURL:      DefaultBaseURL,
		FileName:     DefaultFileName,
		Timeout:      defaultTimeout,
		MaxSizeBytes: defaultMaxSize,
		UserAgent:    "bopomofo",
	}
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Client fetches clips from the mirror
type Client struct {
	options    *Options
	httpClient *http.Client
}

// NewClient creates a mirror client. Empty option fields fall back to the
// defaults.
func NewClient(options *Options) *Client {
	opts := DefaultOptions()
	if options != nil {
		if options.BaseURL != "" {
			opts.BaseURL = options.BaseURL
		}
		if options.FileName != "" {
			opts.FileName = options.FileName
		}
		if options.Timeout > 0 {
			opts.Timeout = options.Timeout
		}
		if options.MaxSizeBytes != 0 {
			opts.MaxSizeBytes = options.MaxSizeBytes
		}
		if options.UserAgent != "" {
			opts.UserAgent = options.UserAgent
		}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		options: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// URL builds the clip URL for a syllable folder
func (c *Client) URL(descriptor string) string {
	return c.options.BaseURL + "/" + url.PathEscape(descriptor) + "/" + url.PathEscape(c.options.FileName)
}

// Name returns the resolver name
func (c *Client) Name() string {
	return "gcin"
}

// Fetch downloads the clip for descriptor
func (c *Client) Fetch(ctx context.Context, descriptor string) ([]byte, error) {
	if strings.TrimSpace(descriptor) == "" {
		return nil, fmt.Errorf("descriptor cannot be empty")
	}

	clipURL := c.URL(descriptor)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clipURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "audio/mpeg, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: clipURL, StatusCode: resp.StatusCode}
	}

	if c.options.MaxSizeBytes <= 0 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return data, nil
	}

	// Read one byte past the limit to detect oversized bodies
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.options.MaxSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > c.options.MaxSizeBytes {
		return nil, fmt.Errorf("clip exceeds maximum size of %d bytes", c.options.MaxSizeBytes)
	}

	return data, nil
}
