// Package engine runs the full voice selection pipeline: time slot,
// category, interaction context, pattern scoring, the playback gate, and
// asset resolution with fallback.
//
// The public contract is fail-closed: malformed input, unknown characters,
// and asset host failures all resolve to a silent Result with a reason; the
// character's text is always still deliverable.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealtone/nutrivoice/internal/asset"
	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/gate"
	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/scoring"
	"github.com/mealtone/nutrivoice/internal/session"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// Request describes one character utterance to decide playback for. The
// optional override fields bypass inference when the caller already knows
// the value; they still flow through the same scoring path.
type Request struct {
	SessionID   string
	CharacterID string
	// Text is the character's reply text.
	Text string
	// UserText is the preceding user message, used for session progression.
	UserText          string
	IsInitialGreeting bool
	// Now anchors time-slot classification; zero means the wall clock.
	Now time.Time

	TimeSlot *timeslot.Slot
	Category *emotion.Category
	Context  *types.Context
}

// Engine is the voice selection pipeline. Safe for concurrent use across
// sessions; per-session write ordering is enforced by the session store's
// version check.
type Engine struct {
	profiles profile.Store
	analyzer *emotion.Analyzer
	resolver *asset.Resolver
	sessions session.Store
	cache    *decisionCache
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnalyzer overrides the lexical analyzer.
func WithAnalyzer(a *emotion.Analyzer) Option {
	return func(e *Engine) { e.analyzer = a }
}

// WithResolver sets the asset resolver. Without one, asset keys are trusted
// unverified.
func WithResolver(r *asset.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithSessionStore enables session-backed context derivation and greeting
// suppression.
func WithSessionStore(s session.Store) Option {
	return func(e *Engine) { e.sessions = s }
}

// WithCache enables the bounded decision cache.
func WithCache(capacity int) Option {
	return func(e *Engine) { e.cache = newDecisionCache(capacity) }
}

// New returns an Engine over the given profile store.
func New(profiles profile.Store, opts ...Option) *Engine {
	e := &Engine{
		profiles: profiles,
		analyzer: emotion.NewAnalyzer(),
		resolver: asset.NewResolver(nil),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Select decides playback for one utterance. It never returns an error and
// never panics across this boundary; failures become silent Results.
func (e *Engine) Select(ctx context.Context, req Request) types.Result {
	now := req.Now
	if now.IsZero() {
		now = e.now()
	}

	slot := timeslot.FromTime(now)
	if req.TimeSlot != nil {
		slot = *req.TimeSlot
	}

	match := e.analyzer.Analyze(req.Text)
	if req.Category != nil {
		match = emotion.Match{Category: *req.Category, Confidence: match.Confidence}
	}

	progress, isGreeting := e.loadProgress(ctx, req)
	role := session.DeriveContext(progress, req.UserText)
	if req.Context != nil {
		role = *req.Context
	}

	var key cacheKey
	if e.cache != nil {
		key = cacheKey{
			characterID: req.CharacterID,
			textHash:    hashText(req.Text),
			slot:        slot,
			category:    match.Category,
			context:     role,
			greeting:    isGreeting,
		}
		if cached, ok := e.cache.get(key); ok {
			e.commitProgress(ctx, progress, req, isGreeting)
			return cached
		}
	}

	result := e.decide(ctx, req.CharacterID, slot, match, role, isGreeting)

	if e.cache != nil {
		e.cache.add(key, result)
	}
	e.commitProgress(ctx, progress, req, isGreeting)
	return result
}

// Explain returns the result's decision trace. It exists so callers can log
// decisions without re-deriving them.
func (e *Engine) Explain(r types.Result) string {
	return r.Reason
}

func (e *Engine) decide(ctx context.Context, characterID string, slot timeslot.Slot, match emotion.Match, role types.Context, isGreeting bool) types.Result {
	prof, err := e.profiles.Get(characterID)
	if err != nil {
		return types.Result{
			ShouldPlay: false,
			Confidence: 0,
			Reason:     fmt.Sprintf("no voice: %v", err),
		}
	}

	scored := scoring.Score(prof, slot, match.Category, role)
	decision := gate.Decide(isGreeting, match.Category, scored.Pattern, characterID, slot)

	result := types.Result{
		Pattern:    scored.Pattern,
		Category:   string(match.Category),
		Confidence: match.Confidence,
		ShouldPlay: decision.ShouldPlay,
		Reason:     scored.Reason + "; " + decision.Reason,
	}
	if !decision.ShouldPlay {
		return result
	}

	chain := asset.FallbackChain(prof, scored.Pattern)
	result.FallbackChain = chain

	resolved, err := e.resolver.VerifyAndFallback(ctx, decision.AssetKey, chain)
	if err != nil {
		if errors.Is(err, asset.ErrAllFallbacksExhausted) {
			result.ShouldPlay = false
			result.Reason += "; no playable asset, falling back to text"
			return result
		}
		result.ShouldPlay = false
		result.Reason += fmt.Sprintf("; asset resolution failed: %v", err)
		return result
	}

	result.AssetKey = resolved
	return result
}

// loadProgress fetches (or seeds) the session record and applies the
// greeting-suppression invariant: once a session has greeted, an initial
// greeting request is demoted to a normal turn.
func (e *Engine) loadProgress(ctx context.Context, req Request) (*session.Progress, bool) {
	isGreeting := req.IsInitialGreeting
	if e.sessions == nil || req.SessionID == "" {
		// Stateless turn: trust the caller's greeting flag and derive the
		// context as if the session were already past its greeting.
		p := &session.Progress{SessionID: req.SessionID, CharacterID: req.CharacterID, HasGreeted: !isGreeting}
		return p, isGreeting
	}

	progress, err := e.sessions.Get(ctx, req.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		progress = &session.Progress{SessionID: req.SessionID, CharacterID: req.CharacterID}
		if createErr := e.sessions.Create(ctx, progress); createErr == nil {
			progress.Version = 1
		}
	} else if err != nil {
		// Store trouble must not break the turn; treat as a fresh session.
		progress = &session.Progress{SessionID: req.SessionID, CharacterID: req.CharacterID}
	}

	if progress.HasGreeted {
		isGreeting = false
	}
	return progress, isGreeting
}

// commitProgress records the turn's effect on the session. A lost version
// race means another turn for the same session already advanced it; that
// update wins.
func (e *Engine) commitProgress(ctx context.Context, progress *session.Progress, req Request, greeted bool) {
	if e.sessions == nil || req.SessionID == "" || progress == nil {
		return
	}
	if greeted {
		session.MarkGreeted(progress)
	}
	session.Advance(progress, req.UserText)
	_ = e.sessions.Update(ctx, progress)
}
