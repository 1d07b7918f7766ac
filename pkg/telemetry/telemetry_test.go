package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutCollectorIsNull(t *testing.T) {
	tel, shutdown, err := New(context.Background(), &Config{Service: "eventfinder"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := tel.T().Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.Equal(t, tel, Global())
}
