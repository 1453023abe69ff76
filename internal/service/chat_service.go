package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/llm"
	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
	"github.com/wataru0019/enconapp/internal/pkg/logger"
	"github.com/wataru0019/enconapp/internal/repository"
	"github.com/wataru0019/enconapp/internal/validator"
)

// CompletionClient is the language model dependency of the chat and
// translation services
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error)
}

// ChatService handles conversation practice sessions
type ChatService struct {
	cfg         *config.Config
	sessionRepo repository.ChatSessionRepository
	messageRepo repository.MessageRepository
	completions CompletionClient
}

// NewChatService creates a new chat service
func NewChatService(
	cfg *config.Config,
	sessionRepo repository.ChatSessionRepository,
	messageRepo repository.MessageRepository,
	completions CompletionClient,
) *ChatService {
	return &ChatService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		completions: completions,
	}
}

// StartSession creates a new practice session for a user
func (s *ChatService) StartSession(ctx context.Context, userID int64, level domain.Level, topic *string) (*domain.ChatSession, error) {
	in := domain.CreateChatSession{
		UserID: userID,
		Level:  level,
		Topic:  topic,
	}
	if err := validator.Validate(&in); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	session, err := s.sessionRepo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return session, nil
}

// ListSessions lists a user's sessions, newest-created first
func (s *ChatService) ListSessions(ctx context.Context, userID int64, limit, offset int) ([]domain.ChatSession, error) {
	sessions, err := s.sessionRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

// ListRecentSessions lists a user's sessions, most recently active first
func (s *ChatService) ListRecentSessions(ctx context.Context, userID int64, limit int) ([]domain.ChatSession, error) {
	sessions, err := s.sessionRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent chat sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns a session with its messages, enforcing ownership
func (s *ChatService) GetSession(ctx context.Context, userID, sessionID int64) (*domain.ChatSessionWithMessages, error) {
	session, err := s.sessionRepo.GetWithMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	if session == nil || session.UserID != userID {
		// Sessions owned by others are indistinguishable from missing ones.
		return nil, apperrors.NotFound("chat session")
	}
	return session, nil
}

// DeleteSession removes a session and its messages, enforcing ownership
func (s *ChatService) DeleteSession(ctx context.Context, userID, sessionID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get chat session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return apperrors.NotFound("chat session")
	}

	if _, err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	return nil
}

// ChatReply is the result of one conversation turn
type ChatReply struct {
	Session     *domain.ChatSession `json:"session"`
	UserMessage domain.Message      `json:"userMessage"`
	Reply       domain.Message      `json:"reply"`
}

// SendMessage runs one conversation turn: the user's message plus recent
// history goes to the model, and both sides of the exchange are stored
// atomically once the model has replied.
func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID int64, text string) (*ChatReply, error) {
	if text == "" {
		return nil, apperrors.Validation("message is required")
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, apperrors.NotFound("chat session")
	}

	historyLimit := s.cfg.Chat.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 50
	}
	history, err := s.messageRepo.ListRecentBySessionID(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	conversation := make([]llm.Message, 0, len(history)+1)
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Sender == domain.SenderAssistant {
			role = llm.RoleAssistant
		}
		conversation = append(conversation, llm.Message{Role: role, Content: msg.Message})
	}
	conversation = append(conversation, llm.Message{Role: llm.RoleUser, Content: text})

	replyText, err := s.completions.Complete(ctx, chatSystemPrompt(session.Level), conversation)
	if err != nil {
		// Nothing is stored for a failed turn, so a retry replays cleanly.
		return nil, err
	}

	stored, err := s.messageRepo.CreateBatch(ctx, []domain.CreateMessage{
		{SessionID: sessionID, Sender: domain.SenderUser, Message: text},
		{SessionID: sessionID, Sender: domain.SenderAssistant, Message: replyText},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store conversation turn: %w", err)
	}

	if err := s.sessionRepo.Touch(ctx, sessionID); err != nil {
		logger.Warn("failed to refresh session activity",
			zap.Int64("session_id", sessionID),
			zap.Error(err),
		)
	}

	return &ChatReply{
		Session:     session,
		UserMessage: stored[0],
		Reply:       stored[1],
	}, nil
}
