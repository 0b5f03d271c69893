package profile

import (
	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// Builtin returns the shipped persona profiles. These mirror the recorded
// asset sets: every pattern named here has a corresponding audio file per
// character on the asset host.
func Builtin() []*Profile {
	return []*Profile{
		akari(),
		minato(),
		yuzu(),
	}
}

// akari is the upbeat morning-person coach.
func akari() *Profile {
	return &Profile{
		CharacterID: "akari",
		DisplayName: "あかり",
		PreferredPatterns: []types.Pattern{
			types.PatternCheerful, types.PatternEncouragement, types.PatternWarm, types.PatternGentle,
		},
		TimeSlotPreferences: map[timeslot.Slot][]types.Pattern{
			timeslot.MorningEarly: {types.PatternCheerful, types.PatternWarm},
			timeslot.Morning:      {types.PatternCheerful, types.PatternEncouragement},
			timeslot.MorningLate:  {types.PatternCheerful, types.PatternWarm},
			timeslot.Lunch:        {types.PatternWarm, types.PatternCheerful},
			timeslot.Afternoon:    {types.PatternWarm, types.PatternGentle},
			timeslot.Snack:        {types.PatternCheerful, types.PatternWarm},
			timeslot.Evening:      {types.PatternWarm, types.PatternGentle},
			timeslot.Dinner:       {types.PatternWarm, types.PatternGentle},
			timeslot.Night:        {types.PatternGentle, types.PatternCalm},
			timeslot.Late:         {types.PatternGentle, types.PatternCalm},
			timeslot.VeryLate:     {types.PatternCalm, types.PatternGentle},
		},
		EmotionMappings: map[emotion.Category][]types.Pattern{
			emotion.Encouragement:    {types.PatternEncouragement, types.PatternCheerful},
			emotion.AgreementDeep:    {types.PatternWarm, types.PatternGentle},
			emotion.AgreementLight:   {types.PatternCheerful, types.PatternWarm},
			emotion.EmotionalSupport: {types.PatternGentle, types.PatternWarm},
			emotion.Thinking:         {types.PatternThinking, types.PatternCalm},
			emotion.NutritionAdvice:  {types.PatternSerious, types.PatternCalm},
			emotion.FoodDiscussion:   {types.PatternCheerful, types.PatternWarm},
			emotion.General:          {types.PatternWarm, types.PatternCheerful},
			emotion.Greeting:         {types.PatternCheerful, types.PatternWarm},
		},
		ContextMappings: map[types.Context][]types.Pattern{
			types.ContextGreeting:      {types.PatternCheerful, types.PatternWarm},
			types.ContextResponse:      {types.PatternWarm, types.PatternCheerful},
			types.ContextEncouragement: {types.PatternEncouragement, types.PatternCheerful},
			types.ContextExplanation:   {types.PatternCalm, types.PatternSerious},
			types.ContextGoodbye:       {types.PatternGentle, types.PatternWarm},
		},
		VoicePreferenceWeight: 0.9,
	}
}

// minato is the measured, analytical coach.
func minato() *Profile {
	return &Profile{
		CharacterID: "minato",
		DisplayName: "みなと",
		PreferredPatterns: []types.Pattern{
			types.PatternCalm, types.PatternSerious, types.PatternThinking, types.PatternGentle,
		},
		TimeSlotPreferences: map[timeslot.Slot][]types.Pattern{
			timeslot.MorningEarly: {types.PatternCalm, types.PatternGentle},
			timeslot.Morning:      {types.PatternCalm, types.PatternSerious},
			timeslot.MorningLate:  {types.PatternSerious, types.PatternCalm},
			timeslot.Lunch:        {types.PatternCalm, types.PatternSerious},
			timeslot.Afternoon:    {types.PatternCalm, types.PatternThinking},
			timeslot.Snack:        {types.PatternGentle, types.PatternCalm},
			timeslot.Evening:      {types.PatternCalm, types.PatternGentle},
			timeslot.Dinner:       {types.PatternCalm, types.PatternGentle},
			timeslot.Night:        {types.PatternGentle, types.PatternCalm},
			timeslot.Late:         {types.PatternGentle, types.PatternCalm},
			timeslot.VeryLate:     {types.PatternCalm, types.PatternGentle},
		},
		EmotionMappings: map[emotion.Category][]types.Pattern{
			emotion.Encouragement:    {types.PatternEncouragement, types.PatternCalm},
			emotion.AgreementDeep:    {types.PatternGentle, types.PatternCalm},
			emotion.AgreementLight:   {types.PatternCalm, types.PatternGentle},
			emotion.EmotionalSupport: {types.PatternGentle, types.PatternCalm},
			emotion.Thinking:         {types.PatternThinking, types.PatternCalm},
			emotion.NutritionAdvice:  {types.PatternSerious, types.PatternCalm},
			emotion.FoodDiscussion:   {types.PatternCalm, types.PatternGentle},
			emotion.General:          {types.PatternCalm, types.PatternGentle},
			emotion.Greeting:         {types.PatternCalm, types.PatternGentle},
		},
		ContextMappings: map[types.Context][]types.Pattern{
			types.ContextGreeting:      {types.PatternCalm, types.PatternGentle},
			types.ContextResponse:      {types.PatternCalm, types.PatternGentle},
			types.ContextEncouragement: {types.PatternEncouragement, types.PatternGentle},
			types.ContextExplanation:   {types.PatternSerious, types.PatternCalm},
			types.ContextGoodbye:       {types.PatternGentle, types.PatternCalm},
		},
		VoicePreferenceWeight: 0.7,
	}
}

// yuzu is the soft-spoken evening companion.
func yuzu() *Profile {
	return &Profile{
		CharacterID: "yuzu",
		DisplayName: "ゆず",
		PreferredPatterns: []types.Pattern{
			types.PatternGentle, types.PatternWarm, types.PatternCalm, types.PatternEncouragement,
		},
		TimeSlotPreferences: map[timeslot.Slot][]types.Pattern{
			timeslot.MorningEarly: {types.PatternGentle, types.PatternCalm},
			timeslot.Morning:      {types.PatternWarm, types.PatternGentle},
			timeslot.MorningLate:  {types.PatternWarm, types.PatternGentle},
			timeslot.Lunch:        {types.PatternWarm, types.PatternGentle},
			timeslot.Afternoon:    {types.PatternGentle, types.PatternWarm},
			timeslot.Snack:        {types.PatternWarm, types.PatternGentle},
			timeslot.Evening:      {types.PatternGentle, types.PatternWarm},
			timeslot.Dinner:       {types.PatternWarm, types.PatternGentle},
			timeslot.Night:        {types.PatternGentle, types.PatternCalm},
			timeslot.Late:         {types.PatternGentle, types.PatternCalm},
			timeslot.VeryLate:     {types.PatternCalm, types.PatternGentle},
		},
		EmotionMappings: map[emotion.Category][]types.Pattern{
			emotion.Encouragement:    {types.PatternEncouragement, types.PatternWarm},
			emotion.AgreementDeep:    {types.PatternGentle, types.PatternWarm},
			emotion.AgreementLight:   {types.PatternGentle, types.PatternWarm},
			emotion.EmotionalSupport: {types.PatternGentle, types.PatternWarm},
			emotion.Thinking:         {types.PatternThinking, types.PatternGentle},
			emotion.NutritionAdvice:  {types.PatternCalm, types.PatternSerious},
			emotion.FoodDiscussion:   {types.PatternWarm, types.PatternGentle},
			emotion.General:          {types.PatternGentle, types.PatternWarm},
			emotion.Greeting:         {types.PatternGentle, types.PatternWarm},
		},
		ContextMappings: map[types.Context][]types.Pattern{
			types.ContextGreeting:      {types.PatternGentle, types.PatternWarm},
			types.ContextResponse:      {types.PatternGentle, types.PatternWarm},
			types.ContextEncouragement: {types.PatternEncouragement, types.PatternWarm},
			types.ContextExplanation:   {types.PatternCalm, types.PatternSerious},
			types.ContextGoodbye:       {types.PatternGentle, types.PatternCalm},
		},
		VoicePreferenceWeight: 0.8,
	}
}
