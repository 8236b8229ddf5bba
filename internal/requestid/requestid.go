// Package requestid carries the X-Request-ID value through a request context.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

type contextKey struct{}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// From returns an empty string when the context carries no request id.
func From(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// New returns the inbound id when present, otherwise a fresh UUID.
func New(inbound string) string {
	if inbound != "" {
		return inbound
	}
	return uuid.NewString()
}
