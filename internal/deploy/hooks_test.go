package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHooksInvokeOrder(t *testing.T) {
	hooks := NewHooks(zap.NewNop())
	var order []string
	record := func(name string) TaskFunc {
		return func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	hooks.Before("b", "a", record("a"))
	hooks.After("b", "c", record("c"))
	hooks.After("c", "d", record("d"))
	hooks.After("b", "e", record("e"))

	require.NoError(t, hooks.Invoke(context.Background(), "b", record("b")))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, order)
}

func TestHooksStopOnError(t *testing.T) {
	hooks := NewHooks(zap.NewNop())
	boom := errors.New("boom")
	ran := false

	hooks.After("main", "fails", func(ctx context.Context) error { return boom })
	hooks.After("main", "never", func(ctx context.Context) error {
		ran = true
		return nil
	})

	err := hooks.Invoke(context.Background(), "main", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fails")
	assert.False(t, ran)
}
