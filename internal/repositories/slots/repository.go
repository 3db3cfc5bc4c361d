// Package slots is the raw key/value layer under every antara feature.
//
// A slot is one named string value, the on-device equivalent of a browser
// storage key. Collections serialise themselves into a slot; the session
// lock keeps its credential in a reserved slot; backups copy slots verbatim.
package slots

import "context"

// Repository reads and writes named slots.
//
// Get reports found=false (and no error) for a slot that was never written.
// Set replaces the whole value in one statement, so a failed write leaves
// the previous value untouched.
type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
