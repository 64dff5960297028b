package session

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/repositories/kv"
	"github.com/dmitrijs2005/resqsync/internal/client/store"
	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_760_000_000, 0)

func clock() func() time.Time { return func() time.Time { return fixedNow } }

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func tokenExpiringAt(t *testing.T, exp int64) string {
	return signedToken(t, jwt.MapClaims{"sub": "a@x.org", "exp": exp})
}

// seed writes raw entries, bypassing Save, the way a previous run would have.
func seed(t *testing.T, repo kv.Repository, token string, expiry int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.TokenKey, token))
	require.NoError(t, repo.Set(ctx, common.ExpiryKey, strconv.FormatInt(expiry, 10)))
}

func newSQLiteSession(t *testing.T) *Session {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	s := NewSQLite(db, WithClock(clock()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}
