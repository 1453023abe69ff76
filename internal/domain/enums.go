package domain

// Level is the learner proficiency level of a chat session
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether the level is one of the closed set
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Sender identifies which side of the conversation produced a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Valid reports whether the sender is one of the closed set
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAssistant
}

// Difficulty is the difficulty level of a vocabulary word
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether the difficulty is one of the closed set
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// WordSource records how a vocabulary word entered the list
type WordSource string

const (
	SourceChat        WordSource = "chat"
	SourceManual      WordSource = "manual"
	SourceTranslation WordSource = "translation"
)

// Valid reports whether the source is one of the closed set
func (s WordSource) Valid() bool {
	switch s {
	case SourceChat, SourceManual, SourceTranslation:
		return true
	}
	return false
}
