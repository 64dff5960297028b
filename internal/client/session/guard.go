package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/dmitrijs2005/resqsync/internal/logging"
)

type Status int

const (
	NotAuthenticated Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "not authenticated"
}

// Navigator moves the user to route.
type Navigator func(ctx context.Context, route string)

// Checker is anything that can decide whether a guarded screen may render.
type Checker interface {
	Check(ctx context.Context) (Status, error)
}

// Guard validates the stored credential once per activation.
type Guard struct {
	session  *Session
	navigate Navigator
	log      logging.Logger
}

// NewGuard builds a guard. navigate and log may be nil.
func NewGuard(s *Session, navigate Navigator, log logging.Logger) *Guard {
	if navigate == nil {
		navigate = func(context.Context, string) {}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Guard{session: s, navigate: navigate, log: log}
}

// Check reads the credential and validates its expiry. The exp claim of the
// token wins over the stored expiry entry. Expired or undecodable credentials
// are removed. Every NotAuthenticated outcome navigates to the landing route.
// A non-nil error is only returned for store failures.
func (g *Guard) Check(ctx context.Context) (Status, error) {
	cred, err := g.session.Credential(ctx)
	if errors.Is(err, common.ErrNoCredential) {
		g.deny(ctx)
		return NotAuthenticated, nil
	}
	if err != nil {
		g.deny(ctx)
		return NotAuthenticated, err
	}

	exp, err := effectiveExpiry(cred)
	if err != nil {
		g.log.Warn(ctx, "stored token is not decodable", "error", err)
		return NotAuthenticated, g.clearAndDeny(ctx)
	}
	if exp == 0 {
		g.log.Warn(ctx, "stored token has no expiry")
		return NotAuthenticated, g.clearAndDeny(ctx)
	}

	if g.session.now().Unix() >= exp {
		g.log.Info(ctx, "session expired", "expiry", exp)
		return NotAuthenticated, g.clearAndDeny(ctx)
	}
	return Authenticated, nil
}

func (g *Guard) clearAndDeny(ctx context.Context) error {
	err := g.session.Clear(ctx)
	g.deny(ctx)
	return err
}

func (g *Guard) deny(ctx context.Context) {
	g.navigate(ctx, common.LandingRoute)
}
