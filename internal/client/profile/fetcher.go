// Package profile loads the signed-in user's profile for one consumer.
//
// A Fetcher keeps the last good snapshot. There is no cache shared between
// fetchers and no retry: a failed fetch returns its error and leaves the
// previous snapshot in place.
package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/logging"
)

type State int

const (
	// StateEmpty means nothing has been fetched yet.
	StateEmpty State = iota
	// StateUnauthenticated means no credential was stored; no request was made.
	StateUnauthenticated
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoaded:
		return "loaded"
	default:
		return "empty"
	}
}

// Result is a profile snapshot with the facts derived from it.
type Result struct {
	State          State
	Profile        *models.UserProfile
	MissingFields  []string
	CanRequestHelp bool
	CanVolunteer   bool
}

// HasRole is a nil-safe shortcut to Profile.HasRole.
func (r Result) HasRole(role models.Role) bool {
	return r.Profile.HasRole(role)
}

// Source performs the authenticated profile request.
type Source interface {
	Profile(ctx context.Context) (*models.UserProfile, error)
}

// Credentials tells whether a stored credential is still unexpired.
type Credentials interface {
	HasValidCredential(ctx context.Context) (bool, error)
}

type Fetcher struct {
	src   Source
	creds Credentials
	log   logging.Logger

	mu   sync.Mutex
	last Result
}

func NewFetcher(src Source, creds Credentials, log logging.Logger) *Fetcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Fetcher{src: src, creds: creds, log: log}
}

// Fetch loads the profile. Without an unexpired credential it returns a
// StateUnauthenticated result and makes no request. Clearing an expired
// credential is left to the guard.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	ok, err := f.creds.HasValidCredential(ctx)
	if err != nil {
		return f.Last(), fmt.Errorf("read credential: %w", err)
	}
	if !ok {
		f.mu.Lock()
		f.last = Result{State: StateUnauthenticated}
		f.mu.Unlock()
		return Result{State: StateUnauthenticated}, nil
	}

	p, err := f.src.Profile(ctx)
	if err != nil {
		f.log.Warn(ctx, "profile fetch failed", "error", err)
		return f.Last(), fmt.Errorf("fetch profile: %w", err)
	}

	res := Derive(p)
	f.mu.Lock()
	f.last = res
	f.mu.Unlock()
	return res, nil
}

// Last returns the most recent snapshot.
func (f *Fetcher) Last() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Derive builds a loaded result from p.
func Derive(p *models.UserProfile) Result {
	return Result{
		State:          StateLoaded,
		Profile:        p,
		MissingFields:  p.MissingFields(),
		CanRequestHelp: p.CanRequestHelp(),
		CanVolunteer:   p.CanVolunteer(),
	}
}
