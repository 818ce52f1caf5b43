package api

import "github.com/voxprep/interview-server/domain/entities"

// InterviewStartRequest begins a new interview session
type InterviewStartRequest struct {
	NumberOfQuestions int `json:"numberOfQuestions"`
}

// InterviewStartResponse carries the welcome message and session credentials
type InterviewStartResponse struct {
	Status            string `json:"status"`
	WelcomeMessage    string `json:"welcomeMessage"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	SessionID         string `json:"sessionId"`
	SessionToken      string `json:"sessionToken"`
	Message           string `json:"message"`
}

// InterviewQuestionRequest asks for the next question given the transcript
type InterviewQuestionRequest struct {
	ConversationHistory []entities.ConversationMessage `json:"conversationHistory"`
	QuestionNumber      int                            `json:"questionNumber"`
	UserResponse        string                         `json:"userResponse,omitempty"`
}

// InterviewQuestionResponse carries one generated question
type InterviewQuestionResponse struct {
	Status         string `json:"status"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"questionNumber"`
}

// InterviewFeedbackRequest asks for feedback or analytics on a transcript
type InterviewFeedbackRequest struct {
	ConversationHistory []entities.ConversationMessage `json:"conversationHistory"`
}

// InterviewFeedbackResponse carries the structured feedback text
type InterviewFeedbackResponse struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
	Message  string `json:"message"`
}

// AnalyticsResponse carries the scored dashboard
type AnalyticsResponse struct {
	Status           string                      `json:"status"`
	Dashboard        entities.AnalyticsDashboard `json:"dashboard"`
	DifficultyScores map[string]float64          `json:"difficultyScores"`
}

// SpeakRequest asks for speech synthesis of the given text
type SpeakRequest struct {
	Text string `json:"text"`
}

// TranscribeResponse acknowledges an uploaded audio file
type TranscribeResponse struct {
	Status  string `json:"status"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status              string `json:"status"`
	Service             string `json:"service"`
	GeminiAPIConfigured bool   `json:"gemini_api_configured"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
