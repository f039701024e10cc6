package events

import "context"

// Publisher abstracts the event transport used to notify collaborators about
// ledger changes. Publishing is best-effort from the caller's point of view:
// services log failures but never fail the request over them.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
