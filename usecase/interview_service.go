package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voxprep/interview-server/domain/entities"
	"github.com/voxprep/interview-server/domain/repositories"
)

// WelcomeMessage opens every interview session.
const WelcomeMessage = "Hello! I'm your AI interview partner. I'll conduct a professional technical interview with you today. Let's begin!"

const interviewerSystemPrompt = `You are a professional technical interviewer conducting a structured interview.
Your role is to:
1. Ask one clear, concise question at a time (2-3 sentences max)
2. Be conversational and encouraging
3. Focus on technical skills, problem-solving, and experience
4. After receiving answers, acknowledge them briefly and move to the next question
5. Generate progressively more advanced questions

Keep your responses concise and professional.`

// defaultQuestions backs question generation when the provider is unavailable.
var defaultQuestions = []string{
	"Tell me about yourself and your professional background.",
	"What is a challenging problem you've solved recently?",
	"Describe your experience with the technologies you've mentioned.",
	"How do you approach learning new technologies?",
	"Can you tell me about a time you worked in a team?",
}

const defaultFeedback = `Interview completed!

OVERALL ASSESSMENT:
The candidate demonstrated good communication skills and technical knowledge.

STRENGTHS:
- Clear articulation of ideas
- Relevant technical experience
- Good problem-solving approach

AREAS FOR IMPROVEMENT:
- Provide more specific examples
- Elaborate on technical details
- Discuss collaboration experience more

FINAL RECOMMENDATION:
Good candidate for further consideration in the recruitment process.`

// InterviewService generates interview questions, feedback, and analytics
// from the conversation transcript.
type InterviewService struct {
	llm      repositories.LargeLanguageModel
	sessions repositories.SessionRepository
	logger   *zap.Logger
}

// NewInterviewService creates a new interview service
func NewInterviewService(
	llm repositories.LargeLanguageModel,
	sessions repositories.SessionRepository,
	logger *zap.Logger,
) *InterviewService {
	return &InterviewService{
		llm:      llm,
		sessions: sessions,
		logger:   logger,
	}
}

// StartInterview creates a new session sized to the requested question count
func (s *InterviewService) StartInterview(ctx context.Context, numberOfQuestions int) (*entities.Session, error) {
	if numberOfQuestions <= 0 {
		numberOfQuestions = 5
	}

	session := entities.NewSession(numberOfQuestions)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Interview session started",
		zap.String("sessionID", session.ID),
		zap.Int("numberOfQuestions", numberOfQuestions))

	return session, nil
}

// Session fetches an existing session by ID
func (s *InterviewService) Session(ctx context.Context, id string) (*entities.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// RecordExchange appends a candidate answer and interviewer question to a
// session's transcript. Missing sessions are tolerated: the HTTP API is
// usable without server-side history.
func (s *InterviewService) RecordExchange(ctx context.Context, sessionID, answer, question string) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		s.logger.Debug("No session to record exchange on", zap.String("sessionID", sessionID))
		return
	}

	if answer != "" {
		session.AddMessage(entities.MessageRoleUser, answer)
	}
	session.AddMessage(entities.MessageRoleAssistant, question)
	if session.IsFinished() {
		session.Complete()
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Warn("Failed to update session",
			zap.String("sessionID", sessionID),
			zap.Error(err))
	}
}

// NextQuestion generates the numbered interview question from the
// conversation so far. Never fails: provider errors fall back to a default
// question list.
func (s *InterviewService) NextQuestion(ctx context.Context, history []entities.ConversationMessage, questionNumber int) string {
	prompt := fmt.Sprintf(`%s

Based on this interview conversation so far:

%s

Generate question number %d for the interview.
Ask a relevant follow-up question or move to a new topic if this is the first question.
IMPORTANT: Return ONLY the question text, nothing else.`,
		interviewerSystemPrompt, formatConversation(history), questionNumber)

	question, err := s.llm.Generate(ctx, prompt, repositories.GenerateOptions{Temperature: 0.7})
	if err != nil {
		s.logger.Error("Failed to generate question, using default",
			zap.Int("questionNumber", questionNumber),
			zap.Error(err))
		return defaultQuestions[max(0, min(questionNumber-1, len(defaultQuestions)-1))]
	}

	return strings.TrimSpace(question)
}

// Feedback generates the structured end-of-interview assessment. Never
// fails: provider errors fall back to canned feedback.
func (s *InterviewService) Feedback(ctx context.Context, history []entities.ConversationMessage) string {
	prompt := fmt.Sprintf(`Analyze this interview conversation and provide structured feedback:

%s

Provide feedback in this exact format:
OVERALL ASSESSMENT:
[1-2 sentences about overall performance]

STRENGTHS:
- [Strength 1]
- [Strength 2]
- [Strength 3]

AREAS FOR IMPROVEMENT:
- [Area 1]
- [Area 2]
- [Area 3]

FINAL RECOMMENDATION:
[1-2 sentences with recommendation]`, formatConversation(history))

	feedback, err := s.llm.Generate(ctx, prompt, repositories.GenerateOptions{Temperature: 0.7})
	if err != nil {
		s.logger.Error("Failed to generate feedback, using default", zap.Error(err))
		return defaultFeedback
	}

	return strings.TrimSpace(feedback)
}

// formatConversation renders the transcript for prompts. The candidate's
// turns are labeled CANDIDATE, everything else INTERVIEWER.
func formatConversation(history []entities.ConversationMessage) string {
	var b strings.Builder
	for _, msg := range history {
		role := "INTERVIEWER"
		if msg.Role == "user" {
			role = "CANDIDATE"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}
	return b.String()
}
