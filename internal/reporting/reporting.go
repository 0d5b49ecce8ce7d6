// Package reporting sends errors to Sentry when a DSN is configured.
// Without a DSN every function is a no-op.
package reporting

import (
	"context"
	"net/http"
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	log "github.com/sirupsen/logrus"
)

// Init configures the Sentry client. An empty dsn disables reporting.
func Init(dsn, release string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return err
	}

	log.WithField("component", "reporting").Info("Sentry error reporting enabled")
	return nil
}

// Middleware attaches a Sentry hub to each request and captures panics
// before passing them on to the next recoverer.
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// CaptureError reports err using the hub bound to ctx, falling back to the
// global hub.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// Flush waits up to timeout for queued events to be sent.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
