package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"google.golang.org/genai"
)

const defaultModel = "gemini-3-flash-preview"

var errAPIKeyRequired = errors.New("gemini api key is required")

// Client generates text through the Gemini Developer API.
type Client struct {
	models     *genai.Models
	httpClient *http.Client
	baseURL    string
	model      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithModel selects the model used for generation.
func WithModel(model string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(model)
		if trimmed != "" {
			c.model = trimmed
		}
	}
}

// NewClient builds the Gemini client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	sdk, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      trimmedKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  client.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: client.baseURL},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "init genai client")
	}
	client.models = sdk.Models

	return client, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateOptions tunes a single generation request. Zero values are omitted.
type GenerateOptions struct {
	MaxOutputTokens int
	Temperature     *float64
}

func (o GenerateOptions) config() *genai.GenerateContentConfig {
	if o.MaxOutputTokens <= 0 && o.Temperature == nil {
		return nil
	}
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(o.MaxOutputTokens)}
	if o.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*o.Temperature))
	}
	return cfg
}

// GenerateText sends a single-turn prompt and returns the text of the first
// candidate. An empty string is a valid result.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if c == nil || c.models == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "gemini client not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "prompt is required")
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), opts.config())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate request failed")
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
