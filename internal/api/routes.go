package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxprep/interview-server/internal/auth"
	"github.com/voxprep/interview-server/internal/ws"
	"github.com/voxprep/interview-server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(
	e *echo.Echo,
	interviews *usecase.InterviewService,
	speech *usecase.SpeechService,
	geminiConfigured bool,
	logger *zap.Logger,
) {
	// Health check
	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:              "healthy",
			Service:             "Interview AI Backend",
			GeminiAPIConfigured: geminiConfigured,
		})
	})

	e.POST("/api/interview/start", func(c echo.Context) error {
		return startInterview(c, interviews, logger)
	})

	// Interview endpoints require the session token issued by /start
	interview := e.Group("/api/interview", sessionAuth(logger))
	interview.POST("/question", func(c echo.Context) error {
		return generateQuestion(c, interviews, logger)
	})
	interview.POST("/feedback", func(c echo.Context) error {
		return generateFeedback(c, interviews, logger)
	})
	interview.POST("/analytics-dashboard", func(c echo.Context) error {
		return generateAnalytics(c, interviews)
	})
	interview.POST("/speak", func(c echo.Context) error {
		return speakText(c, speech, logger)
	})

	e.POST("/api/transcribe", func(c echo.Context) error {
		return transcribeAudio(c, logger)
	})

	// WebSocket endpoint for the live interview channel
	e.GET("/ws/interview", func(c echo.Context) error {
		return interviewSocket(c, interviews, speech, logger)
	})
}

// sessionAuth validates the Bearer session token and stores its session ID
// on the request context.
func sessionAuth(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "missing_token",
					Message: "Session token is required in Authorization header",
				})
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				logger.Warn("Rejected request with invalid session token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "invalid_token",
					Message: "Invalid or expired session token",
				})
			}

			if claims.Role != "interview" {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Error:   "invalid_role",
					Message: "Only interview session tokens are accepted",
				})
			}

			c.Set("sessionID", claims.SessionID)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

func startInterview(c echo.Context, interviews *usecase.InterviewService, logger *zap.Logger) error {
	req := InterviewStartRequest{NumberOfQuestions: 5}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	session, err := interviews.StartInterview(c.Request().Context(), req.NumberOfQuestions)
	if err != nil {
		logger.Error("Failed to start interview", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "session_creation_failed",
			Message: "Failed to create interview session",
		})
	}

	token, err := auth.GenerateSessionToken(session.ID)
	if err != nil {
		logger.Error("Failed to generate session token",
			zap.String("sessionID", session.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate session token",
		})
	}

	return c.JSON(http.StatusOK, InterviewStartResponse{
		Status:            "success",
		WelcomeMessage:    usecase.WelcomeMessage,
		NumberOfQuestions: session.NumberOfQuestions,
		SessionID:         session.ID,
		SessionToken:      token,
		Message:           "Interview session started successfully",
	})
}

func generateQuestion(c echo.Context, interviews *usecase.InterviewService, logger *zap.Logger) error {
	var req InterviewQuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	ctx := c.Request().Context()
	question := interviews.NextQuestion(ctx, req.ConversationHistory, req.QuestionNumber)

	if sessionID, ok := c.Get("sessionID").(string); ok {
		interviews.RecordExchange(ctx, sessionID, req.UserResponse, question)
	}

	return c.JSON(http.StatusOK, InterviewQuestionResponse{
		Status:         "success",
		Question:       question,
		QuestionNumber: req.QuestionNumber,
	})
}

func generateFeedback(c echo.Context, interviews *usecase.InterviewService, logger *zap.Logger) error {
	var req InterviewFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	feedback := interviews.Feedback(c.Request().Context(), req.ConversationHistory)

	return c.JSON(http.StatusOK, InterviewFeedbackResponse{
		Status:   "success",
		Feedback: feedback,
		Message:  "Interview feedback generated successfully",
	})
}

func generateAnalytics(c echo.Context, interviews *usecase.InterviewService) error {
	var req InterviewFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result := interviews.Analytics(c.Request().Context(), req.ConversationHistory)

	return c.JSON(http.StatusOK, AnalyticsResponse{
		Status:           "success",
		Dashboard:        result.Dashboard,
		DifficultyScores: result.DifficultyScores,
	})
}

func speakText(c echo.Context, speech *usecase.SpeechService, logger *zap.Logger) error {
	var req SpeakRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result, err := speech.Synthesize(c.Request().Context(), req.Text)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyText) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "empty_text",
				Message: "Text cannot be empty or whitespace only",
			})
		}
		logger.Error("Speech synthesis failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "synthesis_failed",
			Message: "Failed to generate speech",
		})
	}

	if result.Reason == usecase.FallbackQuota {
		// The client must switch to its local TTS path. No other voice or
		// backend is substituted server-side.
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "tts_quota_exhausted",
			Message: "Speech quota exhausted, use local text-to-speech",
		})
	}

	if len(result.Audio) == 0 {
		// Zero bytes outside the quota path is a terminal failure.
		logger.Error("Synthesis returned empty audio outside the quota path")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "synthesis_failed",
			Message: "Speech generation returned no audio",
		})
	}

	c.Response().Header().Set("Content-Disposition", "attachment; filename=response.wav")
	return c.Blob(http.StatusOK, "audio/wav", result.Audio)
}

func transcribeAudio(c echo.Context, logger *zap.Logger) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_audio",
			Message: "Audio file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("Failed to open uploaded audio", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "upload_failed",
			Message: "Failed to read uploaded audio",
		})
	}
	defer src.Close()

	size, err := io.Copy(io.Discard, src)
	if err != nil {
		logger.Error("Failed to read uploaded audio", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "upload_failed",
			Message: "Failed to read uploaded audio",
		})
	}

	logger.Info("Received audio for transcription",
		zap.String("filename", file.Filename),
		zap.Int64("bytes", size))

	// Transcription is a placeholder collaborator: the audio is accepted but
	// never sent to a recognizer.
	return c.JSON(http.StatusOK, TranscribeResponse{
		Status:  "success",
		Text:    "[Audio transcription placeholder - integrate with Speech-to-Text API]",
		Message: "Audio received (transcription service requires configuration)",
	})
}

// interviewSocket authenticates and upgrades the live interview channel. The
// token is accepted from the Authorization header or the token query
// parameter, since browsers cannot set headers on WebSocket requests.
func interviewSocket(c echo.Context, interviews *usecase.InterviewService, speech *usecase.SpeechService, logger *zap.Logger) error {
	token := bearerToken(c.Request().Header.Get("Authorization"))
	if token == "" {
		token = c.QueryParam("token")
	}
	if token == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "missing_token",
			Message: "Session token is required",
		})
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		logger.Warn("WebSocket connection rejected: invalid token", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired session token",
		})
	}

	if claims.Role != "interview" {
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "invalid_role",
			Message: "Only interview session tokens are accepted",
		})
	}

	return ws.HandleInterview(c, claims.SessionID, interviews, speech, logger)
}
