package domain

import "context"

// Revalidator notifies the website frontend that a post's rendered page is
// stale and must be regenerated. Notifications are fire-and-forget; a
// dropped one only delays regeneration until the next edit.
type Revalidator interface {
	Start(ctx context.Context)

	// Notify enqueues a revalidation for the post with the given slug.
	Notify(slug string)
}
