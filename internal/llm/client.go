// Package llm wraps the chat completion endpoint used for error explanations.
//
// Each query is a single stateless one-shot request: one user message, no
// history, no retries, no streaming. Failures surface as *CompletionError.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Completer answers a single prompt with a single reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionError wraps any transport, auth, or response-format failure from
// the completion endpoint.
type CompletionError struct {
	Stage string // "request", "response"
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion %s failed: %v", e.Stage, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// IsCompletionError reports whether err is (or wraps) a CompletionError.
func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}

// Client is the OpenAI-compatible chat completion adapter.
type Client struct {
	api   *openai.Client
	model string
}

// New returns a Client for the given API key and model. baseURL is optional
// and points the client at an OpenAI-compatible endpoint.
func New(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Complete sends a one-message conversation with role "user" and returns the
// first choice's message content. The call blocks until the remote service
// responds; callers needing a deadline pass one via ctx.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &CompletionError{Stage: "request", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &CompletionError{Stage: "response", Err: errors.New("no choices in response")}
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", &CompletionError{Stage: "response", Err: errors.New("empty message content")}
	}
	return reply, nil
}
