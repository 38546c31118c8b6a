package deploy

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type TaskFunc func(ctx context.Context) error

type hookedTask struct {
	name string
	fn   TaskFunc
}

// Hooks chains named tasks before and after other tasks. Hooked tasks are
// invoked through Invoke too, so their own hooks run.
type Hooks struct {
	before map[string][]hookedTask
	after  map[string][]hookedTask
	logger *zap.Logger
}

func NewHooks(logger *zap.Logger) *Hooks {
	return &Hooks{
		before: make(map[string][]hookedTask),
		after:  make(map[string][]hookedTask),
		logger: logger,
	}
}

func (h *Hooks) Before(target, name string, fn TaskFunc) {
	h.before[target] = append(h.before[target], hookedTask{name: name, fn: fn})
}

func (h *Hooks) After(target, name string, fn TaskFunc) {
	h.after[target] = append(h.after[target], hookedTask{name: name, fn: fn})
}

// Invoke runs the before hooks of name, fn, then the after hooks. The first
// error stops the chain.
func (h *Hooks) Invoke(ctx context.Context, name string, fn TaskFunc) error {
	for _, t := range h.before[name] {
		if err := h.Invoke(ctx, t.name, t.fn); err != nil {
			return err
		}
	}

	h.logger.Info("executing task", zap.String("task", name))
	if err := fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	for _, t := range h.after[name] {
		if err := h.Invoke(ctx, t.name, t.fn); err != nil {
			return err
		}
	}

	return nil
}
