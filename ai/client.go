package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openaiBaseURL  = "https://api.openai.com/v1/chat/completions"
	openaiModel    = "gpt-4o-mini"
	requestTimeout = 60 * time.Second
)

// CompletionClient is the opaque text-completion collaborator: one prompt in,
// one text response out.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient calls the chat completions API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openaiBaseURL,
		model:   openaiModel,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &UpstreamError{Category: CategoryAuthFailed, Message: "OPENAI_API_KEY not set"}
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", &UpstreamError{Category: CategoryInternal, Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", &UpstreamError{Category: CategoryInternal, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", Classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Category: CategoryNetwork, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.Unmarshal(body, &apiErr)
		msg := apiErr.Error.Message
		if msg == "" {
			msg = string(body)
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", &UpstreamError{Category: CategoryRateLimited, Message: msg}
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", &UpstreamError{Category: CategoryAuthFailed, Message: msg}
		default:
			return "", Classify(fmt.Errorf("status %d: %s", resp.StatusCode, msg))
		}
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", &UpstreamError{Category: CategoryInternal, Message: "failed to decode response", Err: err}
	}
	if len(chat.Choices) == 0 {
		return "", &UpstreamError{Category: CategoryInternal, Message: "completion returned no choices"}
	}
	return chat.Choices[0].Message.Content, nil
}
