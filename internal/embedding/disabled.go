// ABOUTME: Placeholder gateway used when no embedding credentials are set
// ABOUTME: Keeps the rest of the system wired; every embed call degrades
package embedding

import (
	"context"
	"fmt"
)

// DisabledGateway satisfies Gateway without an embedding backend. Requests
// that need embeddings fail with ErrUnavailable at call time, so catalog
// lookups and the server itself keep working without credentials.
type DisabledGateway struct {
	dimension int
}

// Disabled returns a gateway that reports the given dimension but cannot
// embed
func Disabled(dimension int) *DisabledGateway {
	return &DisabledGateway{dimension: dimension}
}

// Dimension returns the configured vector dimension
func (d *DisabledGateway) Dimension() int {
	return d.dimension
}

// Embed always fails: no embedding backend is configured
func (d *DisabledGateway) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrUnavailable)
}
