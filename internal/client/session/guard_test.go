package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/resqsync/internal/client/repositories/kv"
	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type navRecorder struct{ routes []string }

func (n *navRecorder) navigate(_ context.Context, route string) {
	n.routes = append(n.routes, route)
}

func newGuard(repo kv.Repository) (*Guard, *navRecorder) {
	nav := &navRecorder{}
	return NewGuard(New(repo, WithClock(clock())), nav.navigate, nil), nav
}

func stored(t *testing.T, repo kv.Repository) map[string]string {
	t.Helper()
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	return all
}

func TestGuard_ExpiredTenSecondsAgo_ClearsAndRedirects(t *testing.T) {
	repo := kv.NewMemoryRepository()
	exp := fixedNow.Unix() - 10
	seed(t, repo, tokenExpiringAt(t, exp), exp)

	g, nav := newGuard(repo)
	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)
	require.Equal(t, []string{common.LandingRoute}, nav.routes)
	require.Empty(t, stored(t, repo))
}

func TestGuard_ValidForAnHour_PassesSilently(t *testing.T) {
	repo := kv.NewMemoryRepository()
	exp := fixedNow.Unix() + 3600
	tok := tokenExpiringAt(t, exp)
	seed(t, repo, tok, exp)
	before := stored(t, repo)

	g, nav := newGuard(repo)
	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, Authenticated, st)
	require.Empty(t, nav.routes)
	require.Equal(t, before, stored(t, repo))
}

func TestGuard_ExpiryBoundaryIsExpired(t *testing.T) {
	repo := kv.NewMemoryRepository()
	exp := fixedNow.Unix()
	seed(t, repo, tokenExpiringAt(t, exp), exp)

	g, _ := newGuard(repo)
	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)
}

func TestGuard_NoCredential(t *testing.T) {
	repo := kv.NewMemoryRepository()
	g, nav := newGuard(repo)

	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)
	require.Equal(t, []string{common.LandingRoute}, nav.routes)
}

func TestGuard_UndecodableTokenTreatedAsExpired(t *testing.T) {
	repo := kv.NewMemoryRepository()
	seed(t, repo, "garbage", fixedNow.Unix()+3600)

	g, nav := newGuard(repo)
	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)
	require.Equal(t, []string{common.LandingRoute}, nav.routes)
	require.Empty(t, stored(t, repo))
}

func TestGuard_ClaimWinsOverStoredExpiry(t *testing.T) {
	repo := kv.NewMemoryRepository()
	seed(t, repo, tokenExpiringAt(t, fixedNow.Unix()-1), fixedNow.Unix()+3600)

	g, _ := newGuard(repo)
	st, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)
	require.Empty(t, stored(t, repo))
}

func TestGuard_FallsBackToStoredExpiry(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "a@x.org"})

	tests := []struct {
		name   string
		expiry int64
		want   Status
	}{
		{"future", fixedNow.Unix() + 60, Authenticated},
		{"past", fixedNow.Unix() - 60, NotAuthenticated},
		{"missing", 0, NotAuthenticated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := kv.NewMemoryRepository()
			seed(t, repo, tok, tc.expiry)

			g, _ := newGuard(repo)
			st, err := g.Check(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.want, st)
		})
	}
}

func TestGuard_StoreErrorDenies(t *testing.T) {
	g, nav := newGuard(failingRepo{kv.NewMemoryRepository()})

	st, err := g.Check(context.Background())
	require.Error(t, err)
	require.Equal(t, NotAuthenticated, st)
	require.Len(t, nav.routes, 1)
}

func TestGuard_SQLiteStore(t *testing.T) {
	s := newSQLiteSession(t)
	ctx := context.Background()
	_, err := s.Save(ctx, tokenExpiringAt(t, fixedNow.Unix()-10))
	require.NoError(t, err)

	st, err := NewGuard(s, nil, nil).Check(ctx)
	require.NoError(t, err)
	require.Equal(t, NotAuthenticated, st)

	ok, err := s.HasCredential(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "authenticated", Authenticated.String())
	require.Equal(t, "not authenticated", NotAuthenticated.String())
}
