package main

import (
	"github.com/wataru0019/enconapp/internal/repository"
	pgrepo "github.com/wataru0019/enconapp/internal/repository/postgres"
	sqliterepo "github.com/wataru0019/enconapp/internal/repository/sqlite"
)

// Repositories holds the repository instances behind their contracts, so
// the rest of the application never knows which backend is running.
type Repositories struct {
	User        repository.UserRepository
	ChatSession repository.ChatSessionRepository
	Message     repository.MessageRepository
	Vocabulary  repository.VocabularyRepository
	Translation repository.TranslationRepository
}

// initRepositories binds the repository contracts to the open backend.
func initRepositories(dbs *Databases) *Repositories {
	if dbs.SQLite != nil {
		return &Repositories{
			User:        sqliterepo.NewUserRepository(dbs.SQLite),
			ChatSession: sqliterepo.NewChatSessionRepository(dbs.SQLite),
			Message:     sqliterepo.NewMessageRepository(dbs.SQLite),
			Vocabulary:  sqliterepo.NewVocabularyRepository(dbs.SQLite),
			Translation: sqliterepo.NewTranslationRepository(dbs.SQLite),
		}
	}

	return &Repositories{
		User:        pgrepo.NewUserRepository(dbs.Postgres),
		ChatSession: pgrepo.NewChatSessionRepository(dbs.Postgres),
		Message:     pgrepo.NewMessageRepository(dbs.Postgres),
		Vocabulary:  pgrepo.NewVocabularyRepository(dbs.Postgres),
		Translation: pgrepo.NewTranslationRepository(dbs.Postgres),
	}
}
