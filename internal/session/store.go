package session

import "context"

// Store persists per-session progress. Implementations must evict sessions
// idle beyond their TTL; reads of an expired session return ErrNotFound.
type Store interface {
	Create(ctx context.Context, p *Progress) error
	Get(ctx context.Context, sessionID string) (*Progress, error)
	Update(ctx context.Context, p *Progress) error
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
