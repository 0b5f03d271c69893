package session

import (
	"testing"

	"github.com/mealtone/nutrivoice/internal/types"
)

func TestStagesAdvanceMonotonically(t *testing.T) {
	p := &Progress{SessionID: "s1", CharacterID: "akari"}
	MarkGreeted(p)
	if p.Stage != StageGreeted {
		t.Fatalf("stage after greeting = %s", p.Stage)
	}

	Advance(p, "身長は160cmで、朝食は食べないことが多いです")
	if p.Stage != StageBasicInfoCollected {
		t.Fatalf("stage = %s, want basic_info_collected", p.Stage)
	}

	Advance(p, "健康診断で数値が気になって、痩せたいと思っています")
	if p.Stage != StageMotivationUnderstood {
		t.Fatalf("stage = %s, want motivation_understood", p.Stage)
	}

	Advance(p, "平日は忙しいので自炊の時間がないんです")
	if p.Stage != StageConstraintsIdentified {
		t.Fatalf("stage = %s, want constraints_identified", p.Stage)
	}

	Advance(p, "わかりました、まずは朝食からやってみます")
	if p.Stage != StageAdviceGiven {
		t.Fatalf("stage = %s, want advice_given", p.Stage)
	}

	Advance(p, "ありがとうございます")
	if p.Stage != StageOngoingSupport {
		t.Fatalf("stage = %s, want ongoing_support", p.Stage)
	}

	// No regression: an early-stage topic never moves the stage back.
	Advance(p, "身長は160cmです")
	if p.Stage != StageOngoingSupport {
		t.Fatalf("stage regressed to %s", p.Stage)
	}
	if p.MessageCount != 6 {
		t.Fatalf("message count = %d, want 6", p.MessageCount)
	}
}

func TestAdvanceSkipsUnmatchedTurns(t *testing.T) {
	p := &Progress{SessionID: "s1", Stage: StageGreeted}
	Advance(p, "今日はいい天気ですね")
	if p.Stage != StageGreeted {
		t.Fatalf("unmatched turn advanced stage to %s", p.Stage)
	}
	Advance(p, "")
	if p.MessageCount != 2 {
		t.Fatalf("message count = %d", p.MessageCount)
	}
}

func TestDeriveContextGreetingOnlyBeforeFirstGreeting(t *testing.T) {
	p := &Progress{SessionID: "s1"}
	if got := DeriveContext(p, "おはよう"); got != types.ContextGreeting {
		t.Fatalf("context before greeting = %s", got)
	}

	MarkGreeted(p)
	for i := 0; i < 20; i++ {
		if got := DeriveContext(p, "おはようございます"); got == types.ContextGreeting {
			t.Fatal("greeting context re-derived after hasGreeted")
		}
	}
}

func TestDeriveContextByStage(t *testing.T) {
	p := &Progress{SessionID: "s1", HasGreeted: true, Stage: StageConstraintsIdentified}
	if got := DeriveContext(p, "そうなんです"); got != types.ContextExplanation {
		t.Fatalf("context = %s, want explanation", got)
	}

	p.Stage = StageOngoingSupport
	if got := DeriveContext(p, "今日も記録しました"); got != types.ContextEncouragement {
		t.Fatalf("context = %s, want encouragement", got)
	}

	if got := DeriveContext(p, "ありがとう、おやすみなさい"); got != types.ContextGoodbye {
		t.Fatalf("context = %s, want goodbye", got)
	}

	p.Stage = StageGreeted
	if got := DeriveContext(p, "ふむふむ"); got != types.ContextResponse {
		t.Fatalf("context = %s, want response", got)
	}
}

func TestNextQuestionTopic(t *testing.T) {
	cases := []struct {
		stage Stage
		topic string
	}{
		{StageGreeted, "basic_info"},
		{StageBasicInfoCollected, "motivation"},
		{StageMotivationUnderstood, "constraints"},
		{StageConstraintsIdentified, "personal_advice"},
		{StageOngoingSupport, "ongoing_support"},
	}
	for _, tc := range cases {
		p := &Progress{Stage: tc.stage}
		if got := NextQuestionTopic(p); got != tc.topic {
			t.Errorf("topic for %s = %s, want %s", tc.stage, got, tc.topic)
		}
	}
}
