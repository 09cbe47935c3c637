package penalty

import "context"

// ApplicationLog records committed penalty applications under content-derived
// keys so a double-submitted commit is detected and skipped.
type ApplicationLog interface {
	// Claim atomically records the key. Returns false when the key was
	// already claimed by an earlier commit.
	Claim(ctx context.Context, key string) (bool, error)
}
