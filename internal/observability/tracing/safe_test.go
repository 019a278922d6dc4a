package tracing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesKeepsAllowlist(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/rooms/availability"),
		attribute.String("customer.email", "a@b.c"),
		attribute.Int("rooms.premium", 3),
	)

	assert.Len(t, attrs, 2)
	for _, attr := range attrs {
		assert.NotEqual(t, attribute.Key("customer.email"), attr.Key)
	}
}

func TestSafeErrorUnwrapsNothing(t *testing.T) {
	base := errors.New("boom")
	wrapped := fmt.Errorf("load: %w", base)

	safe := SafeError(wrapped)
	assert.EqualError(t, safe, "load: boom")
	assert.False(t, errors.Is(safe, base))
	assert.Nil(t, SafeError(nil))
}
