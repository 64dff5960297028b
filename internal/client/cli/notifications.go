package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/notify"
	"github.com/dmitrijs2005/resqsync/internal/client/profile"
	"golang.org/x/sync/errgroup"
)

// Watch streams live notifications until ctx is done, d elapses (d > 0),
// or the server ends the stream. When metricsAddr is set, /metrics is served
// for the duration of the watch.
func (a *App) Watch(ctx context.Context, d time.Duration, metricsAddr string) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		res, err := a.newFetcher().Fetch(ctx)
		if err != nil {
			return err
		}
		if res.State != profile.StateLoaded {
			return nil
		}
		a.email = res.Profile.Email

		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return a.watch(ctx, w, res.Profile, metricsAddr)
	})
}

func (a *App) watch(ctx context.Context, w io.Writer, p *models.UserProfile, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := notify.NewSubscriber(a.client,
		notify.WithLogger(a.log),
		notify.WithObserver(a.metrics),
		notify.WithOnNotification(func(n models.Notification) { printNotification(w, n) }),
	)
	defer sub.Close()

	if err := sub.Start(ctx, p); err != nil {
		return err
	}
	if !sub.Eligible() {
		fmt.Fprintln(w, "Live notifications are available to registered volunteers only.")
		return nil
	}

	a.notice("Listening for notifications as %s (Ctrl-C to stop)...", p.Email)
	done := sub.Done()
	if done == nil {
		// the stream already ended
		ended := make(chan struct{})
		close(ended)
		done = ended
	}

	g, gctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		g.Go(func() error {
			a.log.Info(gctx, "serving metrics", "addr", metricsAddr)
			return a.metrics.Serve(gctx, metricsAddr)
		})
	}
	g.Go(func() error {
		defer cancel()
		select {
		case <-gctx.Done():
			return nil
		case <-done:
			if err := sub.Err(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			a.notice("The server closed the notification stream.")
			return nil
		}
	})

	err := g.Wait()
	a.notice("%d notification(s) received.", len(sub.Notifications()))
	return err
}

func printNotification(w io.Writer, n models.Notification) {
	ts := time.Now()
	if n.Timestamp != nil {
		ts = *n.Timestamp
	}
	fmt.Fprintf(w, "[%s] %s\n", ts.Local().Format("15:04:05"), n.Message)
}
