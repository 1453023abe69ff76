package domain

import "time"

// TranslationEntry is one logged translation request. Entries are immutable
// once created; old entries are pruned by a per-user retention policy.
type TranslationEntry struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"userId" db:"user_id"`
	JapaneseText       string    `json:"japaneseText" db:"japanese_text"`
	EnglishTranslation string    `json:"englishTranslation" db:"english_translation"`
	GrammarFeedback    *string   `json:"grammarFeedback,omitempty" db:"grammar_feedback"`
	NaturalSuggestion  *string   `json:"naturalSuggestion,omitempty" db:"natural_suggestion"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// CreateTranslation represents input for logging a translation
type CreateTranslation struct {
	UserID             int64   `json:"userId" validate:"required"`
	JapaneseText       string  `json:"japaneseText" validate:"required"`
	EnglishTranslation string  `json:"englishTranslation" validate:"required"`
	GrammarFeedback    *string `json:"grammarFeedback,omitempty"`
	NaturalSuggestion  *string `json:"naturalSuggestion,omitempty"`
}

// TranslationResult is the parsed LLM response for a translation request
type TranslationResult struct {
	Translation       string  `json:"translation"`
	GrammarFeedback   *string `json:"grammarFeedback,omitempty"`
	NaturalSuggestion *string `json:"naturalSuggestion,omitempty"`
	Explanation       *string `json:"explanation,omitempty"`
}
