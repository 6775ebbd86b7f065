// Package errtrack reports unexpected failures to Sentry.
// A Reporter built without a DSN drops everything, so callers never need to
// check whether tracking is configured.
package errtrack

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Reporter sends errors to its own Sentry hub.
type Reporter struct {
	hub *sentry.Hub
}

// New builds a Reporter. An empty DSN yields a disabled Reporter.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return &Reporter{}, nil
	}
	return newWithClientOptions(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
	})
}

func newWithClientOptions(opts sentry.ClientOptions) (*Reporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Enabled reports whether events leave the process.
func (r *Reporter) Enabled() bool {
	return r != nil && r.hub != nil
}

// Capture records err with the given tags attached to the event.
func (r *Reporter) Capture(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		r.hub.CaptureException(err)
	})
}

// Flush waits up to timeout for queued events to be delivered.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return r.hub.Flush(timeout)
}
