package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/voxprep/interview-server/adapters/llm"
	"github.com/voxprep/interview-server/adapters/session"
	"github.com/voxprep/interview-server/adapters/speech"
	"github.com/voxprep/interview-server/domain/repositories"
	"github.com/voxprep/interview-server/usecase"
)

type testServer struct {
	e      *echo.Echo
	llm    *llm.MockLLM
	speech *speech.MockSpeech
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	mockLLM := llm.NewMockLLM()
	mockSpeech := speech.NewMockSpeech(logger)

	interviews := usecase.NewInterviewService(mockLLM, session.NewMemoryRepository(), logger)
	speechService := usecase.NewSpeechService(mockSpeech, logger)

	e := echo.New()
	InitRoutes(e, interviews, speechService, false, logger)

	return &testServer{e: e, llm: mockLLM, speech: mockSpeech}
}

func (s *testServer) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// startSession begins an interview and returns its session token.
func (s *testServer) startSession(t *testing.T) string {
	t.Helper()
	rec := s.request(http.MethodPost, "/api/interview/start", "", InterviewStartRequest{NumberOfQuestions: 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("start returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp InterviewStartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse start response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("start response carries no session token")
	}
	return resp.SessionToken
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse health response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}

func TestStartInterview(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/api/interview/start", "", InterviewStartRequest{NumberOfQuestions: 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("start returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp InterviewStartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.NumberOfQuestions != 3 {
		t.Errorf("numberOfQuestions = %d, want 3", resp.NumberOfQuestions)
	}
	if resp.WelcomeMessage == "" || resp.SessionID == "" {
		t.Errorf("incomplete start response: %+v", resp)
	}
}

func TestQuestionRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/api/interview/question", "", InterviewQuestionRequest{QuestionNumber: 1})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("question without token returned %d, want 401", rec.Code)
	}

	rec = s.request(http.MethodPost, "/api/interview/question", "not-a-token", InterviewQuestionRequest{QuestionNumber: 1})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("question with bogus token returned %d, want 401", rec.Code)
	}
}

func TestGenerateQuestion(t *testing.T) {
	s := newTestServer(t)
	s.llm.Responses = []string{"What is a goroutine?"}
	token := s.startSession(t)

	rec := s.request(http.MethodPost, "/api/interview/question", token, InterviewQuestionRequest{
		QuestionNumber: 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("question returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp InterviewQuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Question != "What is a goroutine?" {
		t.Errorf("question = %q", resp.Question)
	}
	if resp.QuestionNumber != 1 {
		t.Errorf("questionNumber = %d, want 1", resp.QuestionNumber)
	}
}

func TestGenerateFeedback(t *testing.T) {
	s := newTestServer(t)
	s.llm.Responses = []string{"OVERALL ASSESSMENT:\nSolid interview."}
	token := s.startSession(t)

	rec := s.request(http.MethodPost, "/api/interview/feedback", token, InterviewFeedbackRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("feedback returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp InterviewFeedbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !strings.Contains(resp.Feedback, "Solid interview.") {
		t.Errorf("feedback = %q", resp.Feedback)
	}
}

func TestAnalyticsDashboard(t *testing.T) {
	s := newTestServer(t)
	s.llm.Responses = []string{`{"overallScore": 91}`}
	token := s.startSession(t)

	rec := s.request(http.MethodPost, "/api/interview/analytics-dashboard", token, InterviewFeedbackRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyticsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Dashboard.OverallScore != 91 {
		t.Errorf("overallScore = %v, want 91", resp.Dashboard.OverallScore)
	}
}

func TestSpeak(t *testing.T) {
	s := newTestServer(t)
	s.speech.Chunks = []repositories.SpeechChunk{
		{Kind: repositories.ChunkAudio, Data: make([]byte, 48000), MIMEType: "audio/L16;rate=24000"},
	}
	token := s.startSession(t)

	rec := s.request(http.MethodPost, "/api/interview/speak", token, SpeakRequest{Text: "Hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("speak returned %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "audio/wav" {
		t.Errorf("content type = %q, want audio/wav", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=response.wav" {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.Len() != 48044 {
		t.Errorf("body length = %d, want 48044", rec.Body.Len())
	}
}

func TestSpeakEmptyText(t *testing.T) {
	s := newTestServer(t)
	token := s.startSession(t)

	for _, text := range []string{"", "   "} {
		rec := s.request(http.MethodPost, "/api/interview/speak", token, SpeakRequest{Text: text})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("speak(%q) returned %d, want 400", text, rec.Code)
		}
	}

	if len(s.speech.Requests) != 0 {
		t.Errorf("upstream called %d times for invalid input", len(s.speech.Requests))
	}
}

func TestSpeakQuotaExhausted(t *testing.T) {
	s := newTestServer(t)
	s.speech.Err = quotaError{}
	token := s.startSession(t)

	rec := s.request(http.MethodPost, "/api/interview/speak", token, SpeakRequest{Text: "Hello"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("speak returned %d, want 503", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Error != "tts_quota_exhausted" {
		t.Errorf("error = %q, want tts_quota_exhausted", resp.Error)
	}
}

type quotaError struct{}

func (quotaError) Error() string { return "googleapi: Error 429: RESOURCE_EXHAUSTED" }

func TestTranscribePlaceholder(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "answer.webm")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write([]byte("fake audio bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("transcribe returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp TranscribeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !strings.Contains(resp.Text, "placeholder") {
		t.Errorf("transcription text = %q, want placeholder marker", resp.Text)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/api/transcribe", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("transcribe without file returned %d, want 400", rec.Code)
	}
}
