// ABOUTME: OpenAI chat client used as the generation gateway
// ABOUTME: Sends the augmented prompt and returns raw completion text
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barback/cocktail-rag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable indicates a transport or timeout failure talking to the
// language model. Retryable at the gateway, recoverable at the
// orchestrator.
var ErrUnavailable = errors.New("generation service unavailable")

const systemPrompt = `You are a knowledgeable bartender. Answer the user's question using ONLY the cocktails provided in the context. Recommend the most fitting ones, mention their key ingredients, and keep the answer short and friendly. If none of the provided cocktails fit, say so.`

// ClientConfig holds configuration for the OpenAI generation client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// OpenAIClient wraps the OpenAI chat API with retry logic
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a new generation client from the given config
func NewOpenAIClient(cfg *ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  chatModel,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Generate sends the augmented prompt to the chat model and returns the
// raw completion text
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	var answer string

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no completion choices returned", ErrUnavailable)
		}

		answer = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}
