package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/config"
	"github.com/dmitrijs2005/resqsync/internal/client/metrics"
	"github.com/dmitrijs2005/resqsync/internal/client/profile"
	"github.com/dmitrijs2005/resqsync/internal/client/services"
	"github.com/dmitrijs2005/resqsync/internal/client/session"
	"github.com/dmitrijs2005/resqsync/internal/client/store"
	"github.com/dmitrijs2005/resqsync/internal/filex"
	"github.com/dmitrijs2005/resqsync/internal/logging"
)

// App holds everything a command needs. Screens that require a signed-in
// user run through the session guard; the rest call the API directly.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Session
	client  api.Client
	guard   *session.Guard
	metrics *metrics.Metrics

	authService         services.AuthService
	requestService      services.RequestService
	verificationService services.VerificationService
	reportService       services.ReportService

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// email is the last known signed-in address, shown in the shell prompt.
	email string
}

// NewApp opens the local credential store under cfg.DataDir and wires the
// API client and services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dir

	db, err := store.Open(ctx, cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	sess := session.NewSQLite(db)

	m := metrics.New()
	client, err := api.NewHTTPClient(cfg.APIBaseURL, sess,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithObserver(m),
	)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}

	return newApp(cfg, log, sess, client, m, os.Stdin, os.Stdout, os.Stderr), nil
}

func newApp(cfg *config.Config, log logging.Logger, sess *session.Session, client api.Client, m *metrics.Metrics,
	in io.Reader, out, errOut io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		config:  cfg,
		log:     log,
		session: sess,
		client:  client,
		metrics: m,
		reader:  bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
	}
	a.guard = session.NewGuard(sess, a.showLanding, log)

	// every service owns its own profile fetcher
	a.authService = services.NewAuthService(client, sess)
	a.requestService = services.NewRequestService(client, a.newFetcher())
	a.verificationService = services.NewVerificationService(client, a.newFetcher())
	a.reportService = services.NewReportService(client, &http.Client{}, services.S3Options{
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
	})
	return a
}

func (a *App) newFetcher() *profile.Fetcher {
	return profile.NewFetcher(a.client, a.session, a.log)
}

// Close releases the credential store.
func (a *App) Close() error {
	return a.session.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.session.HasValidCredential(ctx)
	return err == nil && ok
}

// showLanding is the guard's navigator: the landing screen is the sign-in hint.
func (a *App) showLanding(ctx context.Context, route string) {
	a.email = ""
	a.log.Debug(ctx, "navigate", "route", route)
	a.notice("You are not signed in. Run 'login' or 'signup' to continue.")
}

// protected runs screen only for a signed-in user.
func (a *App) protected(ctx context.Context, screen session.ScreenFunc) error {
	return a.report(ctx, session.Protect(a.guard, screen).Render(ctx, a.out))
}

// notice writes a one-line user message to stderr.
func (a *App) notice(format string, args ...any) {
	fmt.Fprintf(a.errOut, format+"\n", args...)
}

// report turns err into a notice and returns it. Guard refusals were already
// announced by the landing screen.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, session.ErrNotAuthenticated) {
		return err
	}
	a.log.Debug(ctx, "command failed", "error", err)
	a.notice("Error: %s", userMessage(err))
	return reportedError{err}
}

type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r) || errors.Is(err, session.ErrNotAuthenticated)
}

func userMessage(err error) string {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr), errors.Is(err, api.ErrUnavailable):
		return api.Message(err)
	case errors.Is(err, context.DeadlineExceeded):
		return api.Message(api.ErrUnavailable)
	case errors.Is(err, services.ErrProfileIncomplete):
		return "Please complete your profile first (" + strings.TrimPrefix(err.Error(), services.ErrProfileIncomplete.Error()+": ") + ")."
	}
	return err.Error()
}

// status is the shell prompt decoration.
func (a *App) status(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return "(signed out)"
	}
	if a.email != "" {
		return "(" + a.email + ")"
	}
	return "(signed in)"
}
