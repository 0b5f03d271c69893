// Package asset names audio files and verifies they exist before playback.
package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// ErrAllFallbacksExhausted means every candidate asset is missing. The caller
// falls back to text-only display; there is no catch-all default file because
// a generic asset produces mismatched voice/text pairings.
var ErrAllFallbacksExhausted = errors.New("all fallback assets exhausted")

// DefaultExt is the asset file extension of the recorded voice library.
const DefaultExt = "wav"

// DefaultCheckTimeout bounds one existence lookup.
const DefaultCheckTimeout = 3 * time.Second

// Checker reports whether an asset exists on the asset host.
type Checker interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// Key builds the asset key for an emotion/season pattern.
func Key(characterID string, pattern types.Pattern) string {
	return fmt.Sprintf("%s_%s.%s", characterID, pattern, DefaultExt)
}

// GreetingKey builds the asset key for a time-based greeting.
func GreetingKey(characterID string, slot timeslot.Slot) string {
	return fmt.Sprintf("%s_%s.%s", characterID, slot, DefaultExt)
}

// Resolver verifies asset existence with a bounded timeout and walks the
// character's fallback chain on a miss.
type Resolver struct {
	checker Checker
	timeout time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCheckTimeout overrides the per-lookup timeout.
func WithCheckTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResolver returns a Resolver over the given checker. A nil checker means
// assets are trusted to exist (useful when the host is a local bundle).
func NewResolver(checker Checker, opts ...ResolverOption) *Resolver {
	r := &Resolver{checker: checker, timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackChain lists the alternative asset keys for a character after tried
// failed, in the profile's preferred-pattern order. Every candidate is a real
// {character}_{pattern} combination from the character's own list; no generic
// placeholder ever appears.
func FallbackChain(p *profile.Profile, tried types.Pattern) []string {
	chain := make([]string, 0, len(p.PreferredPatterns))
	for _, pattern := range p.PreferredPatterns {
		if pattern == tried {
			continue
		}
		chain = append(chain, Key(p.CharacterID, pattern))
	}
	return chain
}

// VerifyAndFallback returns the first existing key among primary and the
// fallback candidates. Timeouts and lookup errors count as "absent" so the
// decision always resolves; when everything is missing it returns
// ErrAllFallbacksExhausted rather than risking silently-wrong audio.
func (r *Resolver) VerifyAndFallback(ctx context.Context, primary string, fallbacks []string) (string, error) {
	if r.checker == nil {
		return primary, nil
	}
	for _, key := range append([]string{primary}, fallbacks...) {
		if r.exists(ctx, key) {
			return key, nil
		}
	}
	return "", ErrAllFallbacksExhausted
}

func (r *Resolver) exists(ctx context.Context, key string) bool {
	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	ok, err := r.checker.Exists(checkCtx, key)
	if err != nil {
		return false
	}
	return ok
}
