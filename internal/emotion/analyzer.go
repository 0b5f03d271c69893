// Package emotion classifies character utterances into conversational
// categories using keyword substring matching. The matching is deliberately
// simple: lowercased substring containment, no tokenization. Ambiguous
// phrasing can misclassify; that ceiling is part of the contract, not a bug.
package emotion

import "strings"

// Rule confidences. Tuned empirically; not derived from a model.
const (
	confidenceEncouragement  = 0.95
	confidenceFoodChat       = 0.9
	confidenceAgreementDeep  = 0.85
	confidenceFoodReclassify = 0.8
	confidenceAgreementLight = 0.75
	confidenceSupport        = 0.8
	confidenceNutrition      = 0.85
	confidenceThinking       = 0.7
	confidenceGeneral        = 0.6
)

// nutritionMinHits is the plurality of distinct technical terms required
// before an utterance counts as nutrition advice. One incidental term must
// not silence the voice.
const nutritionMinHits = 2

// thinkingMaxRunes bounds the thinking rule to short hesitations.
const thinkingMaxRunes = 30

// Analyzer classifies utterance text against a keyword table.
type Analyzer struct {
	table Table
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTable overrides the keyword table, for tests or per-deployment tuning.
func WithTable(t Table) Option {
	return func(a *Analyzer) { a.table = t }
}

// NewAnalyzer returns an Analyzer using the default keyword table.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{table: DefaultTable()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the best category match for text.
//
// The rules apply in a fixed linear order; the first satisfied rule wins.
// The ordering carries product meaning (food chatter beats agreement so a
// taste remark is never read as emotional connection) and must not be
// reordered.
func (a *Analyzer) Analyze(text string) Match {
	if strings.TrimSpace(text) == "" {
		return Match{Category: General, Confidence: 0}
	}
	lower := strings.ToLower(text)

	if hits := containsAny(lower, a.table.Encouragement); len(hits) > 0 {
		return Match{Category: Encouragement, MatchedKeywords: hits, Confidence: confidenceEncouragement}
	}
	if hits := containsAny(lower, a.table.FoodChat); len(hits) > 0 {
		return Match{Category: FoodDiscussion, MatchedKeywords: hits, Confidence: confidenceFoodChat}
	}
	if hits := containsAny(lower, a.table.AgreementDeep); len(hits) > 0 {
		return Match{Category: AgreementDeep, MatchedKeywords: hits, Confidence: confidenceAgreementDeep}
	}
	if hits := containsAny(lower, a.table.AgreementLight); len(hits) > 0 {
		// Light agreement inside a food context is text-only chatter,
		// not emotional connection.
		if food := containsAny(lower, a.table.FoodNouns); len(food) > 0 {
			return Match{Category: FoodDiscussion, MatchedKeywords: append(food, hits...), Confidence: confidenceFoodReclassify}
		}
		return Match{Category: AgreementLight, MatchedKeywords: hits, Confidence: confidenceAgreementLight}
	}
	if hits := containsAny(lower, a.table.Support); len(hits) > 0 {
		return Match{Category: EmotionalSupport, MatchedKeywords: hits, Confidence: confidenceSupport}
	}
	if hits := containsAny(lower, a.table.Nutrition); len(hits) >= nutritionMinHits {
		return Match{Category: NutritionAdvice, MatchedKeywords: hits, Confidence: confidenceNutrition}
	}
	if hits := containsAny(lower, a.table.Thinking); len(hits) > 0 && len([]rune(text)) < thinkingMaxRunes {
		return Match{Category: Thinking, MatchedKeywords: hits, Confidence: confidenceThinking}
	}
	return Match{Category: General, Confidence: confidenceGeneral}
}

// AnalyzeAll returns every satisfied rule in precedence order. The first
// entry always equals Analyze(text).
func (a *Analyzer) AnalyzeAll(text string) []Match {
	first := a.Analyze(text)
	matches := []Match{first}
	if strings.TrimSpace(text) == "" {
		return matches
	}
	lower := strings.ToLower(text)

	appendIf := func(cat Category, hits []string, confidence float64) {
		if len(hits) == 0 || cat == first.Category {
			return
		}
		matches = append(matches, Match{Category: cat, MatchedKeywords: hits, Confidence: confidence})
	}
	appendIf(Encouragement, containsAny(lower, a.table.Encouragement), confidenceEncouragement)
	appendIf(FoodDiscussion, containsAny(lower, a.table.FoodChat), confidenceFoodChat)
	appendIf(AgreementDeep, containsAny(lower, a.table.AgreementDeep), confidenceAgreementDeep)
	appendIf(AgreementLight, containsAny(lower, a.table.AgreementLight), confidenceAgreementLight)
	appendIf(EmotionalSupport, containsAny(lower, a.table.Support), confidenceSupport)
	if hits := containsAny(lower, a.table.Nutrition); len(hits) >= nutritionMinHits {
		appendIf(NutritionAdvice, hits, confidenceNutrition)
	}
	if len([]rune(text)) < thinkingMaxRunes {
		appendIf(Thinking, containsAny(lower, a.table.Thinking), confidenceThinking)
	}
	return matches
}

func containsAny(lower string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}
