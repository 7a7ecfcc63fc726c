// Package lock serializes check-then-write sequences that share a key,
// typically one calendar date.
package lock

import "context"

// Locker hands out exclusive leases on a key. The returned release func
// must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// DateKey is the lock key for a booking date.
func DateKey(date string) string {
	return "booking:" + date
}

// QueueKey is the lock key for a day's walk-in queue.
func QueueKey(date string) string {
	return "walkin:" + date
}
