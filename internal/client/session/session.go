// Package session owns the client's single piece of durable state, the
// credential, and decides whether a guarded screen may render.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/repositories/kv"
	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/dmitrijs2005/resqsync/internal/dbx"
)

// Credential is a bearer token plus its expiry in seconds since epoch.
type Credential struct {
	Token  string
	Expiry int64
}

// Valid reports whether the credential is usable at now.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && now.Unix() < c.Expiry
}

type Option func(*Session)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.nowFn = now }
}

// Session is the explicit session context: it wraps the credential store and
// is passed to every component that needs the credential.
type Session struct {
	mu    sync.Mutex
	db    *sql.DB
	repo  kv.Repository
	nowFn func() time.Time
}

// New returns a session over an arbitrary key-value store.
func New(repo kv.Repository, opts ...Option) *Session {
	s := &Session{repo: repo, nowFn: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSQLite returns a session over the local SQLite store. Writes of the
// token and its expiry happen in a single transaction.
func NewSQLite(db *sql.DB, opts ...Option) *Session {
	s := New(kv.NewSQLiteRepository(db), opts...)
	s.db = db
	return s
}

func (s *Session) now() time.Time { return s.nowFn() }

// Save decodes token, stores it together with its expiry and returns the
// resulting credential. Tokens without an exp claim are rejected.
func (s *Session) Save(ctx context.Context, token string) (Credential, error) {
	exp, ok, err := decodeExpiry(token)
	if err != nil {
		return Credential{}, err
	}
	if !ok {
		return Credential{}, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	write := func(ctx context.Context, repo kv.Repository) error {
		if err := repo.Set(ctx, common.TokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.ExpiryKey, strconv.FormatInt(exp, 10))
	}

	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return write(ctx, kv.NewSQLiteRepository(tx))
		})
	} else {
		err = write(ctx, s.repo)
	}
	if err != nil {
		return Credential{}, fmt.Errorf("save credential: %w", err)
	}
	return Credential{Token: token, Expiry: exp}, nil
}

// Credential returns the stored credential, or common.ErrNoCredential. An
// unreadable expiry entry yields Expiry 0.
func (s *Session) Credential(ctx context.Context) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return Credential{}, err
	}
	if !ok || tok == "" {
		return Credential{}, common.ErrNoCredential
	}

	cred := Credential{Token: tok}
	raw, ok, err := s.repo.Get(ctx, common.ExpiryKey)
	if err != nil {
		return Credential{}, err
	}
	if ok {
		if v, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			cred.Expiry = v
		}
	}
	return cred, nil
}

// Token implements api.TokenSource. It does not check expiry; that is the
// guard's job.
func (s *Session) Token(ctx context.Context) (string, error) {
	cred, err := s.Credential(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

// HasCredential reports whether a token is stored, without decoding it.
func (s *Session) HasCredential(ctx context.Context) (bool, error) {
	_, err := s.Credential(ctx)
	if errors.Is(err, common.ErrNoCredential) {
		return false, nil
	}
	return err == nil, err
}

// HasValidCredential is HasCredential plus an expiry check at the session
// clock, using the same precedence as the guard. It never modifies the store.
func (s *Session) HasValidCredential(ctx context.Context) (bool, error) {
	cred, err := s.Credential(ctx)
	if errors.Is(err, common.ErrNoCredential) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	exp, err := effectiveExpiry(cred)
	if err != nil || exp == 0 {
		return false, nil
	}
	return s.now().Unix() < exp, nil
}

// effectiveExpiry is the token's exp claim, or the stored expiry when the
// token carries none.
func effectiveExpiry(cred Credential) (int64, error) {
	exp, ok, err := decodeExpiry(cred.Token)
	if err != nil {
		return 0, err
	}
	if !ok {
		exp = cred.Expiry
	}
	return exp, nil
}

// Reset wipes every entry of the local store, not only the credential, and
// returns how many entries were removed.
func (s *Session) Reset(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	wipe := func(ctx context.Context, repo kv.Repository) error {
		all, err := repo.List(ctx)
		if err != nil {
			return err
		}
		n = len(all)
		return repo.Clear(ctx)
	}

	var err error
	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return wipe(ctx, kv.NewSQLiteRepository(tx))
		})
	} else {
		err = wipe(ctx, s.repo)
	}
	if err != nil {
		return 0, fmt.Errorf("reset store: %w", err)
	}
	return n, nil
}

// Clear removes the credential entries.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, common.TokenKey, common.ExpiryKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Close releases the underlying database, if any.
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
