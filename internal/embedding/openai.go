// ABOUTME: OpenAI-backed embedding gateway with batching and retry logic
// ABOUTME: Validates every returned vector against the configured dimension
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/barback/cocktail-rag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig holds configuration for the OpenAI embedding gateway
type ClientConfig struct {
	APIKey     string
	Model      openai.EmbeddingModel
	Dimension  int
	BatchSize  int
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// OpenAIGateway embeds text via the OpenAI embeddings API
type OpenAIGateway struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimension  int
	batchSize  int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIGateway creates an embedding gateway from the given config
func NewOpenAIGateway(cfg *ClientConfig) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dimension)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIGateway{
		client:     openai.NewClient(cfg.APIKey),
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		batchSize:  batchSize,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Dimension returns the configured vector dimension
func (g *OpenAIGateway) Dimension() int {
	return g.dimension
}

// Embed returns one vector per input text, order-preserving. Inputs are
// split into batches of at most batchSize per API call. Transport failures
// surface as ErrUnavailable after retries are exhausted; a wrong-length
// vector surfaces immediately as ErrDimensionMismatch.
func (g *OpenAIGateway) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += g.batchSize {
		end := start + g.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := g.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (g *OpenAIGateway) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	var vectors [][]float64

	err := util.Retry(ctx, g.maxRetries, g.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: g.model,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("%w: got %d embeddings for %d inputs", ErrUnavailable, len(resp.Data), len(texts))
		}

		// The API reports each vector's input position; place by index so
		// the result is order-preserving regardless of response order.
		out := make([][]float64, len(texts))
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(texts) {
				return fmt.Errorf("%w: embedding index %d out of range", ErrUnavailable, item.Index)
			}
			if len(item.Embedding) != g.dimension {
				return util.Permanent(fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, g.dimension, len(item.Embedding)))
			}
			vec := make([]float64, len(item.Embedding))
			for i, v := range item.Embedding {
				vec[i] = float64(v)
			}
			out[item.Index] = vec
		}
		vectors = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}
