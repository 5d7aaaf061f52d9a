package port

import "context"

// CartStorage is durable client-side storage for the cart, addressed by one
// fixed key. The payload is an opaque byte slice owned by the core (a JSON
// array of product ids).
type CartStorage interface {
	// Load returns the stored cart payload, or nil when nothing is stored.
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the stored cart payload. Last write wins.
	Save(ctx context.Context, payload []byte) error
}
