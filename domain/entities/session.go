package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the status of an interview session
type SessionStatus string

const (
	SessionStatusActive     SessionStatus = "active"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusTerminated SessionStatus = "terminated"
)

// MessageRole represents the role of a message sender
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// SessionMessage represents a single exchange within an interview session
type SessionMessage struct {
	Timestamp time.Time   `json:"timestamp"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
}

// Session represents one interview between a candidate and the system
type Session struct {
	ID                string           `json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	LastActiveAt      time.Time        `json:"last_active_at"`
	Status            SessionStatus    `json:"status"`
	NumberOfQuestions int              `json:"number_of_questions"`
	QuestionsAsked    int              `json:"questions_asked"`
	Messages          []SessionMessage `json:"messages"`
}

// NewSession creates a new interview session
func NewSession(numberOfQuestions int) *Session {
	now := time.Now()
	return &Session{
		ID:                uuid.NewString(),
		CreatedAt:         now,
		LastActiveAt:      now,
		Status:            SessionStatusActive,
		NumberOfQuestions: numberOfQuestions,
		Messages:          make([]SessionMessage, 0),
	}
}

// AddMessage appends a message to the session transcript
func (s *Session) AddMessage(role MessageRole, content string) {
	s.Messages = append(s.Messages, SessionMessage{
		Timestamp: time.Now(),
		Role:      role,
		Content:   content,
	})
	s.LastActiveAt = time.Now()
	if role == MessageRoleAssistant {
		s.QuestionsAsked++
	}
}

// Complete marks the session as completed once every question has been asked
func (s *Session) Complete() {
	s.Status = SessionStatusCompleted
	s.LastActiveAt = time.Now()
}

// Terminate marks the session as terminated
func (s *Session) Terminate() {
	s.Status = SessionStatusTerminated
	s.LastActiveAt = time.Now()
}

// IsFinished reports whether the interview has asked all its questions
func (s *Session) IsFinished() bool {
	return s.QuestionsAsked >= s.NumberOfQuestions
}

// Validate validates the session data
func (s *Session) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.NumberOfQuestions <= 0 {
		return errors.New("number of questions must be positive")
	}
	if s.Status != SessionStatusActive && s.Status != SessionStatusCompleted && s.Status != SessionStatusTerminated {
		return errors.New("invalid session status")
	}
	return nil
}
