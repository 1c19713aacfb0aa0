package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL points at the hosted agent platform API.
const DefaultBaseURL = "https://api.julep.ai/api"

// Client talks to the external agent platform that owns agents, tools,
// tasks and executions. Orchestration happens on the platform's side; the
// client only registers definitions and observes executions.
type Client struct {
	Config
}

type Config struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

func NewClient(opts ...Option) *Client {
	ret := new(Client)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	if ret.pollInterval <= 0 {
		ret.pollInterval = DefaultPollInterval
	}
	return ret
}

// APIError is a non-2xx reply from the platform.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform: %s (status %d)", e.Message, e.Status)
}

// do sends one authenticated request and decodes the reply into result when
// result is non-nil. Every request carries a fresh X-Request-Id.
func (c *Client) do(ctx context.Context, method string, path string, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		bs, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(bs)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(httpResp)
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(httpResp *http.Response) error {
	apiErr := &APIError{Status: httpResp.StatusCode}
	var envelope struct {
		Error   *APIError `json:"error"`
		Message string    `json:"message"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		} else {
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(httpResp.StatusCode)
	}
	return apiErr
}
