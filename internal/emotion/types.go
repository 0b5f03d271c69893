package emotion

// Category is a closed conversational category label.
type Category string

const (
	Encouragement    Category = "encouragement"
	AgreementDeep    Category = "agreement_deep"
	AgreementLight   Category = "agreement_light"
	EmotionalSupport Category = "emotional_support"
	NutritionAdvice  Category = "nutrition_advice"
	FoodDiscussion   Category = "food_discussion"
	Thinking         Category = "thinking"
	General          Category = "general_conversation"
	Greeting         Category = "greeting"
)

// Match is one classification outcome with the keywords that produced it.
type Match struct {
	Category        Category
	MatchedKeywords []string
	Confidence      float64
}

// IsAgreement reports whether c is either agreement depth.
func (c Category) IsAgreement() bool {
	return c == AgreementDeep || c == AgreementLight
}
