package enrich

import (
	"context"
)

// Collaborator extracts structured fields from the page at url following
// prompt. Implementations may be slow and may fail.
type Collaborator interface {
	Enrich(ctx context.Context, url string, prompt string) (Fields, error)
}

// CollaboratorFunc adapts a function to the Collaborator interface.
type CollaboratorFunc func(ctx context.Context, url string, prompt string) (Fields, error)

func (f CollaboratorFunc) Enrich(ctx context.Context, url string, prompt string) (Fields, error) {
	return f(ctx, url, prompt)
}
