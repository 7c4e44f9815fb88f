// Package generator dispatches paper generation requests to a Generator
// implementation and applies the resulting per-row status transitions.
package generator

import (
	"context"

	"github.com/google/uuid"
)

// Request is one generation request built from a selected row. It is
// immutable once created.
type Request struct {
	SessionID   uuid.UUID
	RowIdx      int
	Name        string
	Description string
	Location    string
	Cells       []string
	Date        string
	Signature   string
}

// Outcome is the completion callback payload for one request.
type Outcome struct {
	SessionID uuid.UUID
	RowIdx    int
	Filename  string
	Err       error
}

// Generator produces the paper document for one request. Implementations
// are opaque to the rest of the service: they get a row plus metadata and
// either return the artifact filename or an error.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
