package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/resqsync/internal/client/sse"
)

// Stream is one live server-push connection. Events arrive on Events() in
// arrival order; the channel closes when the connection ends for any reason.
// Close releases the connection and waits for the reader goroutine to exit.
type Stream struct {
	events chan sse.Event
	body   io.ReadCloser
	cancel context.CancelFunc
	stop   chan struct{}
	done   chan struct{}

	once   sync.Once
	mu     sync.Mutex
	err    error
	closed bool
}

// NewStream starts decoding body. cancel, if not nil, is called on Close and
// when the reader exits.
func NewStream(body io.ReadCloser, cancel context.CancelFunc) *Stream {
	if cancel == nil {
		cancel = func() {}
	}
	s := &Stream{
		events: make(chan sse.Event),
		body:   body,
		cancel: cancel,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.read()
	return s
}

func (s *Stream) read() {
	defer close(s.done)
	defer close(s.events)
	defer s.cancel()

	dec := sse.NewDecoder(s.body)
	for {
		ev, err := dec.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.setErr(err)
			}
			return
		}
		select {
		case s.events <- ev:
		case <-s.stop:
			return
		}
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil && !s.closed {
		s.err = err
	}
}

// Events yields decoded events until the stream ends.
func (s *Stream) Events() <-chan sse.Event { return s.events }

// Done is closed after the reader goroutine has exited.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Err reports why the stream ended: nil for a clean end of stream or an
// explicit Close, the transport error otherwise (cancelling the Subscribe
// context counts as a transport error). Valid after Done.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the connection. It is safe to call more than once.
func (s *Stream) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stop)

		s.cancel()
		_ = s.body.Close()
	})
	<-s.done
	return nil
}

// Subscribe opens the notification stream for email. The returned stream is
// not bound by the client's request timeout; it lives until ctx is done or
// Close is called.
func (c *HTTPClient) Subscribe(ctx context.Context, email string) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)

	resp, release, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   pathSubscribe,
		query:  emailQuery(email),
		authed: true,
		accept: "text/event-stream",
		stream: true,
	})
	if err != nil {
		cancel()
		return nil, err
	}

	return NewStream(resp.Body, func() {
		release()
		cancel()
	}), nil
}
