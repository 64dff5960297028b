// Package notify keeps a live notification feed for an eligible user.
//
// A Subscriber moves Idle -> CheckingEligibility -> Subscribed -> Closed.
// It holds at most one live connection; a profile change closes the old
// connection before a new one is opened. Transport errors end the feed and
// are not retried.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/sse"
	"github.com/dmitrijs2005/resqsync/internal/logging"
)

var ErrClosed = errors.New("subscriber closed")

type State int

const (
	StateIdle State = iota
	StateCheckingEligibility
	StateSubscribed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCheckingEligibility:
		return "checking-eligibility"
	case StateSubscribed:
		return "subscribed"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Eligible reports whether p may receive live notifications: the role set
// must hold both USER and VOLUNTEER, and the email must be known.
func Eligible(p *models.UserProfile) bool {
	return p != nil && p.Email != "" && p.HasAllRoles(models.RoleUser, models.RoleVolunteer)
}

// Source opens the server-push stream for an email.
type Source interface {
	Subscribe(ctx context.Context, email string) (*api.Stream, error)
}

// Observer is told about connection and message events (metrics).
type Observer interface {
	ConnectionOpened()
	ConnectionClosed()
	NotificationReceived()
	NotificationDropped()
}

type Option func(*Subscriber)

func WithLogger(l logging.Logger) Option {
	return func(s *Subscriber) { s.log = l }
}

// WithOnNotification registers fn to run for each accepted notification, in
// arrival order, on the connection's reader goroutine. fn must not call Close
// or Update synchronously: both wait for that goroutine to exit. Start them
// in a new goroutine instead.
func WithOnNotification(fn func(models.Notification)) Option {
	return func(s *Subscriber) { s.onNote = fn }
}

func WithObserver(o Observer) Option {
	return func(s *Subscriber) { s.obs = o }
}

type conn struct {
	stream *api.Stream
	email  string
	done   chan struct{}
}

type Subscriber struct {
	src    Source
	log    logging.Logger
	onNote func(models.Notification)
	obs    Observer

	// lifecycle serializes Update and Close; mu guards the fields below and
	// is the only lock the reader goroutine takes.
	lifecycle sync.Mutex
	mu        sync.Mutex
	state     State
	eligible  bool
	conn      *conn
	notes     []models.Notification
	closed    bool
	lastErr   error
}

func NewSubscriber(src Source, opts ...Option) *Subscriber {
	s := &Subscriber{src: src, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update evaluates p and, when eligible, makes sure exactly one connection
// for p.Email is live. The connection lives until ctx is done, Close is
// called, or a later Update changes eligibility or email. Calling Update
// with an unchanged eligible profile keeps the existing connection.
func (s *Subscriber) Update(ctx context.Context, p *models.UserProfile) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	eligible := Eligible(p)
	var email string
	if p != nil {
		email = p.Email
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.conn != nil && eligible && s.conn.email == email {
		s.mu.Unlock()
		return nil
	}
	s.state = StateCheckingEligibility
	s.eligible = eligible
	old := s.conn
	s.conn = nil
	s.mu.Unlock()

	if old != nil {
		old.close()
	}

	if !eligible {
		s.setState(StateClosed)
		s.log.Info(ctx, "notifications not available for this profile", "email", email)
		return nil
	}

	stream, err := s.src.Subscribe(ctx, email)
	if err != nil {
		s.mu.Lock()
		s.state = StateClosed
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	c := &conn{stream: stream, email: email, done: make(chan struct{})}
	s.mu.Lock()
	s.conn = c
	s.state = StateSubscribed
	s.lastErr = nil
	s.mu.Unlock()

	if s.obs != nil {
		s.obs.ConnectionOpened()
	}
	s.log.Debug(ctx, "notification stream opened", "email", email)

	go s.pump(ctx, c)
	return nil
}

// Start is the first Update.
func (s *Subscriber) Start(ctx context.Context, p *models.UserProfile) error {
	return s.Update(ctx, p)
}

func (s *Subscriber) pump(ctx context.Context, c *conn) {
	defer close(c.done)

	for ev := range c.stream.Events() {
		if ev.Type != sse.DefaultEventType {
			s.log.Debug(ctx, "ignoring event", "type", ev.Type)
			continue
		}
		n, err := models.ParseNotification(ev.Data)
		if errors.Is(err, models.ErrBadTimestamp) {
			s.log.Debug(ctx, "keeping notification without timestamp", "error", err)
			err = nil
		}
		if err != nil {
			s.log.Warn(ctx, "dropping malformed notification", "error", err)
			if s.obs != nil {
				s.obs.NotificationDropped()
			}
			continue
		}

		s.mu.Lock()
		if s.conn != c {
			s.mu.Unlock()
			continue
		}
		s.notes = append(s.notes, n)
		cb := s.onNote
		s.mu.Unlock()

		if s.obs != nil {
			s.obs.NotificationReceived()
		}
		if cb != nil {
			cb(n)
		}
	}

	err := c.stream.Err()
	s.mu.Lock()
	if s.conn == c {
		s.conn = nil
		s.state = StateClosed
		s.lastErr = err
	}
	s.mu.Unlock()

	if s.obs != nil {
		s.obs.ConnectionClosed()
	}
	if err != nil {
		s.log.Warn(ctx, "notification stream ended", "error", err)
	} else {
		s.log.Debug(ctx, "notification stream closed")
	}
}

func (c *conn) close() {
	_ = c.stream.Close()
	<-c.done
}

// Close ends the feed. After it returns no further notifications are
// appended and no callbacks run. Safe to call more than once.
func (s *Subscriber) Close() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	s.closed = true
	s.state = StateClosed
	old := s.conn
	s.conn = nil
	s.mu.Unlock()

	if old != nil {
		old.close()
	}
	return nil
}

// Done returns a channel closed when the current connection ends, or nil
// when there is none.
func (s *Subscriber) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.done
}

func (s *Subscriber) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Eligible reports the outcome of the last eligibility check.
func (s *Subscriber) Eligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eligible
}

// Err is the error that ended the last connection, if any.
func (s *Subscriber) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Notifications returns a copy of the feed in arrival order.
func (s *Subscriber) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notes))
	copy(out, s.notes)
	return out
}
