package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/notify"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var (
	_ api.Observer    = (*Metrics)(nil)
	_ notify.Observer = (*Metrics)(nil)
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET /api/news/pandemic", 200, 10*time.Millisecond)
	m.ObserveRequest("GET /api/news/pandemic", 200, 10*time.Millisecond)
	m.ObserveRequest("GET /api/news/pandemic", 0, time.Second)

	require.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET /api/news/pandemic", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET /api/news/pandemic", "error")))
	require.Equal(t, 1, testutil.CollectAndCount(m.apiRequestDuration))
}

func TestStreamAndNotificationCounters(t *testing.T) {
	m := New()
	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed()
	m.NotificationReceived()
	m.NotificationDropped()
	m.NotificationDropped()

	require.Equal(t, 1.0, testutil.ToFloat64(m.streamsActive))
	require.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("accepted")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues("dropped")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.NotificationReceived()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "resqsync_client_notifications_total")
}

func TestServe_StopsOnCancel(t *testing.T) {
	m := New()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- m.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
