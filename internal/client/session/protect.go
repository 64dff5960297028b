package session

import (
	"context"
	"errors"
	"io"
)

// ErrNotAuthenticated is returned by a protected screen that refused to render.
var ErrNotAuthenticated = errors.New("not authenticated")

// Screen renders to w.
type Screen interface {
	Render(ctx context.Context, w io.Writer) error
}

type ScreenFunc func(ctx context.Context, w io.Writer) error

func (f ScreenFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

type protected struct {
	guard Checker
	next  Screen
}

// Protect wraps next so it only renders once guard reports Authenticated.
// Otherwise nothing is written to w.
func Protect(guard Checker, next Screen) Screen {
	return &protected{guard: guard, next: next}
}

func (p *protected) Render(ctx context.Context, w io.Writer) error {
	st, err := p.guard.Check(ctx)
	if err != nil {
		return err
	}
	if st != Authenticated {
		return ErrNotAuthenticated
	}
	return p.next.Render(ctx, w)
}
