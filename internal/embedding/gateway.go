// ABOUTME: Embedding gateway contract for converting text into vectors
// ABOUTME: Defines the interface and error taxonomy shared by implementations
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable indicates a transport or timeout failure talking to the
// embedding model. Retryable.
var ErrUnavailable = errors.New("embedding service unavailable")

// ErrDimensionMismatch indicates the model returned vectors of a different
// length than the configured dimension. A misconfiguration, never retried.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Gateway converts text into fixed-dimension vectors. Implementations are
// pure functions from text to vector modulo external service state: the
// same text always yields the same vector.
type Gateway interface {
	// Embed returns one vector per input text, order-preserving.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	// Dimension returns the configured vector dimension.
	Dimension() int
}
