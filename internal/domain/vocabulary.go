package domain

import "time"

// VocabularyWord is a word saved to a user's personal vocabulary list
type VocabularyWord struct {
	ID                 int64      `json:"id" db:"id"`
	UserID             int64      `json:"userId" db:"user_id"`
	JapaneseWord       string     `json:"japaneseWord" db:"japanese_word"`
	EnglishTranslation string     `json:"englishTranslation" db:"english_translation"`
	Category           string     `json:"category" db:"category"`
	DifficultyLevel    Difficulty `json:"difficultyLevel" db:"difficulty_level"`
	Notes              *string    `json:"notes,omitempty" db:"notes"`
	Source             WordSource `json:"source" db:"source"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}

// CreateVocabulary represents input for saving a vocabulary word. Zero-value
// Category, DifficultyLevel, and Source fall back to the storage defaults
// (general, beginner, manual).
type CreateVocabulary struct {
	UserID             int64      `json:"userId" validate:"required"`
	JapaneseWord       string     `json:"japaneseWord" validate:"required"`
	EnglishTranslation string     `json:"englishTranslation" validate:"required"`
	Category           string     `json:"category,omitempty"`
	DifficultyLevel    Difficulty `json:"difficultyLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Notes              *string    `json:"notes,omitempty"`
	Source             WordSource `json:"source,omitempty" validate:"omitempty,oneof=chat manual translation"`
}

// VocabularyUpdate carries a partial update; nil fields are left untouched
type VocabularyUpdate struct {
	JapaneseWord       *string     `json:"japaneseWord,omitempty"`
	EnglishTranslation *string     `json:"englishTranslation,omitempty"`
	Category           *string     `json:"category,omitempty"`
	DifficultyLevel    *Difficulty `json:"difficultyLevel,omitempty"`
	Notes              *string     `json:"notes,omitempty"`
}

// Empty reports whether the update carries no fields
func (u VocabularyUpdate) Empty() bool {
	return u.JapaneseWord == nil && u.EnglishTranslation == nil &&
		u.Category == nil && u.DifficultyLevel == nil && u.Notes == nil
}
