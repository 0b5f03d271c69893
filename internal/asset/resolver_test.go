package asset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

type fakeChecker struct {
	existing map[string]bool
	err      error
	delay    time.Duration
	calls    []string
}

func (c *fakeChecker) Exists(ctx context.Context, key string) (bool, error) {
	c.calls = append(c.calls, key)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if c.err != nil {
		return false, c.err
	}
	return c.existing[key], nil
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		CharacterID:           "akari",
		PreferredPatterns:     []types.Pattern{types.PatternCheerful, types.PatternEncouragement, types.PatternGentle},
		VoicePreferenceWeight: 0.9,
	}
}

func TestKeyFormats(t *testing.T) {
	if got := Key("akari", types.PatternCheerful); got != "akari_cheerful.wav" {
		t.Fatalf("Key = %s", got)
	}
	if got := GreetingKey("akari", timeslot.Morning); got != "akari_morning.wav" {
		t.Fatalf("GreetingKey = %s", got)
	}
}

func TestFallbackChainExcludesTriedAndGenerics(t *testing.T) {
	chain := FallbackChain(testProfile(), types.PatternCheerful)
	want := []string{"akari_encouragement.wav", "akari_gentle.wav"}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain[%d] = %s, want %s", i, chain[i], want[i])
		}
	}
	for _, key := range chain {
		if strings.Contains(key, "default") || !strings.HasPrefix(key, "akari_") {
			t.Fatalf("chain contains non-character asset %s", key)
		}
	}
}

func TestVerifyPrimaryHit(t *testing.T) {
	checker := &fakeChecker{existing: map[string]bool{"akari_cheerful.wav": true}}
	r := NewResolver(checker)
	got, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav", []string{"akari_gentle.wav"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "akari_cheerful.wav" {
		t.Fatalf("resolved %s", got)
	}
	if len(checker.calls) != 1 {
		t.Fatalf("expected a single lookup, got %v", checker.calls)
	}
}

func TestVerifyWalksFallbacksInOrder(t *testing.T) {
	checker := &fakeChecker{existing: map[string]bool{"akari_gentle.wav": true}}
	r := NewResolver(checker)
	got, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav",
		[]string{"akari_encouragement.wav", "akari_gentle.wav"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "akari_gentle.wav" {
		t.Fatalf("resolved %s", got)
	}
	want := []string{"akari_cheerful.wav", "akari_encouragement.wav", "akari_gentle.wav"}
	for i := range want {
		if checker.calls[i] != want[i] {
			t.Fatalf("lookup order %v, want %v", checker.calls, want)
		}
	}
}

func TestVerifyExhausted(t *testing.T) {
	r := NewResolver(&fakeChecker{})
	_, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav", []string{"akari_gentle.wav"})
	if !errors.Is(err, ErrAllFallbacksExhausted) {
		t.Fatalf("expected ErrAllFallbacksExhausted, got %v", err)
	}
}

func TestVerifyTreatsErrorsAsAbsent(t *testing.T) {
	checker := &fakeChecker{err: errors.New("connection refused")}
	r := NewResolver(checker)
	_, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav", nil)
	if !errors.Is(err, ErrAllFallbacksExhausted) {
		t.Fatalf("lookup errors must resolve to absent, got %v", err)
	}
}

func TestVerifyTimesOut(t *testing.T) {
	checker := &fakeChecker{
		existing: map[string]bool{"akari_cheerful.wav": true},
		delay:    200 * time.Millisecond,
	}
	r := NewResolver(checker, WithCheckTimeout(10*time.Millisecond))
	start := time.Now()
	_, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav", nil)
	if !errors.Is(err, ErrAllFallbacksExhausted) {
		t.Fatalf("timeout must count as absent, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("lookup was not bounded by the timeout: %v", elapsed)
	}
}

func TestVerifyNilCheckerTrustsPrimary(t *testing.T) {
	r := NewResolver(nil)
	got, err := r.VerifyAndFallback(context.Background(), "akari_cheerful.wav", nil)
	if err != nil || got != "akari_cheerful.wav" {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestHTTPChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if r.URL.Path == "/akari_cheerful.wav" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	checker := NewHTTPChecker(srv.URL, time.Second)
	ok, err := checker.Exists(context.Background(), "akari_cheerful.wav")
	if err != nil || !ok {
		t.Fatalf("expected present, got %v %v", ok, err)
	}
	ok, err = checker.Exists(context.Background(), "akari_missing.wav")
	if err != nil || ok {
		t.Fatalf("expected absent, got %v %v", ok, err)
	}
}
