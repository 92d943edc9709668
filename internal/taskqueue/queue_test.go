package taskqueue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	noop := func(ctx context.Context, payload []byte) error { return nil }

	registry.Register("sync_clockify_time_entries", noop)
	registry.Register("check_budget_status", noop)

	handler, ok := registry.Handler("check_budget_status")
	require.True(t, ok)
	assert.NotNil(t, handler)

	_, ok = registry.Handler("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"check_budget_status", "sync_clockify_time_entries"}, registry.Names())
}

func TestRunHandlerRecoversPanic(t *testing.T) {
	panicky := func(ctx context.Context, payload []byte) error {
		panic("boom")
	}
	err := runHandler(context.Background(), panicky, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job panicked")

	ok := func(ctx context.Context, payload []byte) error { return nil }
	assert.NoError(t, runHandler(context.Background(), ok, nil))
}
