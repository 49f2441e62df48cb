package editor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("a save is already in progress")

// Gateway is the write surface of one admin resource.
type Gateway[T any] interface {
	Create(ctx context.Context, payload any) (*T, error)
	Update(ctx context.Context, id string, payload any) (*T, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*T, error)
}

// Editor submits one form kind and refreshes the list after every
// successful write. Failures are returned unchanged and leave the list
// as it was.
type Editor[T any] struct {
	form    Form
	gw      Gateway[T]
	refresh func(context.Context)
	log     *zap.Logger
	busy    atomic.Bool
}

// Option configures an Editor.
type Option[T any] func(*Editor[T])

// WithLogger sets the logger for write events.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(e *Editor[T]) {
		if l != nil {
			e.log = l
		}
	}
}

// New builds an Editor. refresh may be nil when no list is shown.
func New[T any](form Form, gw Gateway[T], refresh func(context.Context), opts ...Option[T]) *Editor[T] {
	if refresh == nil {
		refresh = func(context.Context) {}
	}
	e := &Editor[T]{form: form, gw: gw, refresh: refresh, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Form returns the field set the editor submits.
func (e *Editor[T]) Form() Form { return e.form }

// Saving reports whether a submission is in flight.
func (e *Editor[T]) Saving() bool { return e.busy.Load() }

// Submit creates a record when id is empty and updates it otherwise.
func (e *Editor[T]) Submit(ctx context.Context, id string, values map[string]string) (*T, error) {
	payload, err := e.form.Parse(values, id != "")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return e.Do(ctx, "create", func(ctx context.Context) (*T, error) {
			return e.gw.Create(ctx, payload)
		})
	}
	return e.Do(ctx, "update", func(ctx context.Context) (*T, error) {
		return e.gw.Update(ctx, id, payload)
	})
}

// ToggleStatus flips the publication state of id.
func (e *Editor[T]) ToggleStatus(ctx context.Context, id string) (*T, error) {
	return e.Do(ctx, "toggle-status", func(ctx context.Context) (*T, error) {
		return e.gw.ToggleStatus(ctx, id)
	})
}

// Delete removes id.
func (e *Editor[T]) Delete(ctx context.Context, id string) error {
	_, err := e.Do(ctx, "delete", func(ctx context.Context) (*T, error) {
		return nil, e.gw.Delete(ctx, id)
	})
	return err
}

// Do runs one write under the busy guard and refreshes on success. It is
// the hook for resource specific actions such as featuring a card.
func (e *Editor[T]) Do(ctx context.Context, action string, fn func(context.Context) (*T, error)) (*T, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)

	rec, err := fn(ctx)
	if err != nil {
		e.log.Debug("write failed",
			zap.String("entity", e.form.Entity),
			zap.String("action", action),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", action, e.form.Entity, err)
	}
	e.log.Info("write",
		zap.String("entity", e.form.Entity),
		zap.String("action", action),
	)
	e.refresh(ctx)
	return rec, nil
}
