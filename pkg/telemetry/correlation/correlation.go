package correlation

import (
	"context"

	"github.com/oklog/ulid/v2"
	obscontext "github.com/smallbiznis/roommanager/internal/observability/context"
)

// NewID returns a lexicographically sortable correlation identifier.
func NewID() string {
	return ulid.Make().String()
}

// ExtractCorrelationID fetches a correlation ID from the context if present.
func ExtractCorrelationID(ctx context.Context) string {
	return obscontext.CorrelationIDFromContext(ctx)
}

// EnsureCorrelationID guarantees a correlation ID on the context, generating one when missing.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	cid := ExtractCorrelationID(ctx)
	if cid == "" {
		cid = NewID()
	}
	return obscontext.WithCorrelationID(ctx, cid), cid
}
