package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Seohyeoksu/lunchlens/internal/config"
)

// request types mirror the OpenAI chat-completions wire format.
type apiRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	retry   RetryPolicy
	logger  *slog.Logger
}

// NewClient builds a Client. It fails with config.ErrMissingAPIKey when no
// credential is configured, before any network call is possible.
func NewClient(apiKey, baseURL, model string, retry RetryPolicy, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		// Report synthesis can take a while on long menus.
		client: &http.Client{Timeout: 120 * time.Second},
		retry:  retry,
		logger: logger,
	}, nil
}

// Complete sends one chat-completion request, retrying transient failures
// per the client's RetryPolicy, and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.retry.Do(ctx, func() (string, error) {
		return c.doOnce(ctx, payload)
	})
}

// buildRequest assembles the message list. A text-only request uses a plain
// string content; an image request uses the multi-part content form with the
// image embedded as a data URI.
func (c *Client) buildRequest(req Request) apiRequest {
	var content any = req.Prompt
	if len(req.ImageData) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/png"
		}
		uri := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(req.ImageData))
		content = []contentPart{
			{Type: "text", Text: req.Prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: uri}},
		}
	}

	return apiRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: content}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

func (c *Client) doOnce(ctx context.Context, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// Connection-level failures are retryable.
		return "", &TransientError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close model response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransientError{Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &TransientError{Status: resp.StatusCode, Err: fmt.Errorf("%s", bytes.TrimSpace(body))}
	default:
		return "", &FatalError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &FatalError{Status: resp.StatusCode, Body: fmt.Sprintf("undecodable response: %v", err)}
	}
	if len(decoded.Choices) == 0 {
		return "", &FatalError{Status: resp.StatusCode, Body: "no choices in response"}
	}
	return decoded.Choices[0].Message.Content, nil
}
