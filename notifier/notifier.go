package notifier

import "context"

// Notifier publishes state-change events to listeners. At-most-once:
// no acknowledgment, no retry, no ordering guarantee across
// subscribers. Callers log publish failures and move on; a lost event
// never fails the scan that produced it.
type Notifier interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// Noop is wired when no event backend is configured, and in tests.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event string, payload interface{}) error {
	return nil
}
