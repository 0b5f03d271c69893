package emotion

// Table holds the keyword families the analyzer matches against. The lists
// were tuned empirically against real coaching transcripts; keep entries
// lowercase, matching is substring containment over the lowercased text.
type Table struct {
	// Encouragement are explicit support/praise phrases.
	Encouragement []string
	// FoodChat are casual taste/cooking words that mark food small talk.
	FoodChat []string
	// FoodNouns are food item words used only to detect a food context
	// around an otherwise generic acknowledgement.
	FoodNouns []string
	// AgreementDeep are explicit empathy/understanding phrases.
	AgreementDeep []string
	// AgreementLight are filler acknowledgements.
	AgreementLight []string
	// Support is distress/comfort vocabulary.
	Support []string
	// Nutrition are technical nutrition terms; two distinct hits are
	// required before the utterance counts as advice.
	Nutrition []string
	// Thinking are hesitation fillers, only meaningful on short utterances.
	Thinking []string
}

// DefaultTable returns the shipped keyword families, Japanese-first with the
// English variants the coaching personas also produce.
func DefaultTable() Table {
	return Table{
		Encouragement: []string{
			"素晴らしい", "すばらしい", "頑張", "がんば", "応援",
			"サポートします", "えらい", "偉い", "その調子", "すごいです",
			"決意", "全力で", "amazing", "great job", "proud of you",
			"you can do it", "keep it up",
		},
		FoodChat: []string{
			"美味しい", "おいしい", "うまい", "味が", "好きです", "好物",
			"食べたい", "作り方", "レシピ", "おやつに", "カップヌードル",
			"tasty", "delicious", "yummy", "cooking",
		},
		FoodNouns: []string{
			"そば", "うどん", "カレー", "ご飯", "ごはん", "パン",
			"ラーメン", "野菜", "果物", "お菓子", "スープ", "お肉",
			"curry", "noodle", "snack", "salad",
		},
		AgreementDeep: []string{
			"わかります", "分かります", "その気持ち", "共感",
			"おっしゃる通り", "本当にそうです", "よくわかり",
			"i understand how", "i know exactly",
		},
		AgreementLight: []string{
			"ですよね", "なるほど", "確かに", "たしかに", "うんうん",
			"そうそう", "そうなんです", "i see", "makes sense",
		},
		Support: []string{
			"つらい", "辛い", "大丈夫", "無理しないで", "寄り添",
			"不安", "心配", "悲しい", "落ち込", "休んで",
			"it's okay", "don't worry", "i'm here",
		},
		Nutrition: []string{
			"タンパク質", "たんぱく質", "カロリー", "ビタミン", "グラム",
			"糖質", "脂質", "食物繊維", "ミネラル", "一日あたり", "摂取量",
			"kcal", "protein", "calorie", "vitamin", "gram", "per day", "%",
		},
		Thinking: []string{
			"うーん", "ええと", "えっと", "そうですね...", "どうでしょう",
			"どうかな", "考えてみ", "hmm", "let me think",
		},
	}
}
