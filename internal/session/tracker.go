package session

import (
	"strings"

	"github.com/mealtone/nutrivoice/internal/types"
)

// Stage-progression keyword families. Like the emotion analyzer these are
// substring matches, but oriented at conversation-stage topics rather than
// sentiment.
var (
	basicInfoKeywords = []string{
		"身長", "体重", "年齢", "歳です", "仕事", "普段", "生活リズム",
		"朝食", "昼食", "夕食", "食生活",
	}
	motivationKeywords = []string{
		"痩せたい", "やせたい", "健康診断", "きっかけ", "目標", "なりたい",
		"改善したい", "気になって", "ダイエット",
	}
	constraintKeywords = []string{
		"忙しい", "時間がない", "苦手", "アレルギー", "嫌い", "続かない",
		"外食が多い", "夜勤", "できない",
	}
	adviceAckKeywords = []string{
		"やってみます", "試してみます", "参考になり", "わかりました",
		"頑張ってみ", "意識してみ",
	}
	farewellKeywords = []string{
		"さようなら", "おやすみ", "また明日", "またね", "失礼します",
		"バイバイ", "goodbye", "good night", "see you",
	}
)

// MarkGreeted records that the time-based greeting has been delivered.
// Once set it never clears for the session's lifetime.
func MarkGreeted(p *Progress) {
	p.HasGreeted = true
	if p.Stage < StageGreeted {
		p.Stage = StageGreeted
	}
}

// Advance classifies one user turn and moves the stage forward when the turn
// matches the next stage's topic. Stages only ever advance.
func Advance(p *Progress, userText string) {
	p.MessageCount++
	if strings.TrimSpace(userText) == "" {
		return
	}
	lower := strings.ToLower(userText)

	next := p.Stage
	switch p.Stage {
	case StageNoGreeting, StageGreeted:
		if matchesAny(lower, basicInfoKeywords) {
			next = StageBasicInfoCollected
		}
	case StageBasicInfoCollected:
		if matchesAny(lower, motivationKeywords) {
			next = StageMotivationUnderstood
		}
	case StageMotivationUnderstood:
		if matchesAny(lower, constraintKeywords) {
			next = StageConstraintsIdentified
		}
	case StageConstraintsIdentified:
		if matchesAny(lower, adviceAckKeywords) {
			next = StageAdviceGiven
		}
	case StageAdviceGiven:
		next = StageOngoingSupport
	}
	if next > p.Stage {
		p.Stage = next
	}
}

// DeriveContext maps the session state and the incoming user turn to the
// interaction context consumed by scoring.
//
// Greeting context is only ever derived before the first greeting; once
// HasGreeted is set, a time-based greeting is never re-selected for the
// session.
func DeriveContext(p *Progress, userText string) types.Context {
	if !p.HasGreeted {
		return types.ContextGreeting
	}
	if matchesAny(strings.ToLower(userText), farewellKeywords) {
		return types.ContextGoodbye
	}
	switch p.Stage {
	case StageConstraintsIdentified:
		// The character is delivering tailored advice at this stage.
		return types.ContextExplanation
	case StageAdviceGiven, StageOngoingSupport:
		return types.ContextEncouragement
	default:
		return types.ContextResponse
	}
}

// NextQuestionTopic names the information the character should ask for next,
// based on how far the conversation has progressed.
func NextQuestionTopic(p *Progress) string {
	switch p.Stage {
	case StageNoGreeting, StageGreeted:
		return "basic_info"
	case StageBasicInfoCollected:
		return "motivation"
	case StageMotivationUnderstood:
		return "constraints"
	case StageConstraintsIdentified:
		return "personal_advice"
	default:
		return "ongoing_support"
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
