package letter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/types"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (g *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	g.lastSystem = system
	g.lastUser = user
	return g.reply, g.err
}

func (g *fakeGenerator) Name() string { return "fake" }

type fakeTurns struct {
	turns []types.Turn
	err   error
}

func (s *fakeTurns) ListForDay(ctx context.Context, characterID string, day time.Time) ([]types.Turn, error) {
	return s.turns, s.err
}

type fakeLetters struct {
	saved []types.Letter
	err   error
}

func (s *fakeLetters) Save(ctx context.Context, letter types.Letter) error {
	s.saved = append(s.saved, letter)
	return s.err
}

func testProfiles(t *testing.T) profile.Store {
	t.Helper()
	store, err := profile.NewStaticStore(profile.Builtin()...)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func day() time.Time {
	return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
}

func TestComposePersistsLetter(t *testing.T) {
	gen := &fakeGenerator{
		reply: "前置きの文章 {\"body\": \"今日もよく頑張りましたね。\", \"highlights\": [\"朝食の相談\"], \"mood\": \"あたたかい\"} 後置き",
	}
	turns := &fakeTurns{turns: []types.Turn{
		{Role: "user", Content: "朝ごはん何がいいかな"},
		{Role: "character", Content: "タンパク質を意識してみましょう"},
	}}
	sink := &fakeLetters{}

	w := NewWriter(gen, testProfiles(t), turns, sink)
	letter, err := w.Compose(context.Background(), "akari", day())
	if err != nil {
		t.Fatal(err)
	}
	if letter == nil {
		t.Fatal("expected a letter")
	}
	if letter.Body != "今日もよく頑張りましたね。" {
		t.Fatalf("body = %q", letter.Body)
	}
	if letter.Date != "2026-08-30" {
		t.Fatalf("date = %q", letter.Date)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("saved %d letters", len(sink.saved))
	}
	if len(letter.Highlights) != 1 || letter.Highlights[0] != "朝食の相談" {
		t.Fatalf("highlights = %v", letter.Highlights)
	}
}

func TestComposePromptCarriesPersonaAndTranscript(t *testing.T) {
	gen := &fakeGenerator{reply: `{"body": "b", "highlights": [], "mood": "m"}`}
	turns := &fakeTurns{turns: []types.Turn{
		{Role: "user", Content: "運動もした方がいい?"},
	}}
	w := NewWriter(gen, testProfiles(t), turns, &fakeLetters{})

	if _, err := w.Compose(context.Background(), "yuzu", day()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.lastSystem, "ゆず") {
		t.Fatalf("system prompt missing persona: %q", gen.lastSystem)
	}
	if !strings.Contains(gen.lastUser, "運動もした方がいい?") {
		t.Fatalf("transcript missing turn: %q", gen.lastUser)
	}
}

func TestComposeSkipsEmptyDay(t *testing.T) {
	gen := &fakeGenerator{reply: `{"body": "b"}`}
	sink := &fakeLetters{}
	w := NewWriter(gen, testProfiles(t), &fakeTurns{}, sink)

	letter, err := w.Compose(context.Background(), "minato", day())
	if err != nil {
		t.Fatal(err)
	}
	if letter != nil {
		t.Fatalf("empty day produced a letter: %+v", letter)
	}
	if len(sink.saved) != 0 {
		t.Fatal("empty day persisted a letter")
	}
}

func TestComposeRejectsMalformedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "ただのテキストで、JSONなし"}
	turns := &fakeTurns{turns: []types.Turn{{Role: "user", Content: "こんにちは"}}}
	w := NewWriter(gen, testProfiles(t), turns, &fakeLetters{})

	if _, err := w.Compose(context.Background(), "akari", day()); err == nil {
		t.Fatal("malformed reply must fail")
	}
}

func TestComposeUnknownCharacter(t *testing.T) {
	w := NewWriter(&fakeGenerator{}, testProfiles(t), &fakeTurns{}, &fakeLetters{})
	_, err := w.Compose(context.Background(), "nobody", day())
	if !errors.Is(err, profile.ErrUnknownCharacter) {
		t.Fatalf("err = %v", err)
	}
}
