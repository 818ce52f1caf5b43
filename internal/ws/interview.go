// Package ws carries the live interview channel: the client sends answers as
// JSON text frames and receives the next question with synthesized audio.
package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxprep/interview-server/domain/entities"
	"github.com/voxprep/interview-server/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// clientMessage is a frame sent by the candidate's client.
type clientMessage struct {
	Type    string `json:"type"` // "answer" or "end"
	Content string `json:"content,omitempty"`
}

// serverMessage is a frame sent to the candidate's client. Audio is a base64
// WAV container; TTSFallback tells the client to voice the text locally.
type serverMessage struct {
	Type           string `json:"type"` // "welcome", "question", "feedback", "error"
	QuestionNumber int    `json:"questionNumber,omitempty"`
	Question       string `json:"question,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	Audio          string `json:"audio,omitempty"`
	TTSFallback    bool   `json:"ttsFallback,omitempty"`
	Error          string `json:"error,omitempty"`
}

// conn wraps one live interview connection.
type conn struct {
	ws         *websocket.Conn
	send       chan serverMessage
	sessionID  string
	interviews *usecase.InterviewService
	speech     *usecase.SpeechService
	logger     *zap.Logger

	history        []entities.ConversationMessage
	questionNumber int
}

// HandleInterview upgrades the request and runs the interview loop for one
// pre-authenticated session.
func HandleInterview(
	c echo.Context,
	sessionID string,
	interviews *usecase.InterviewService,
	speech *usecase.SpeechService,
	logger *zap.Logger,
) error {
	session, err := interviews.Session(c.Request().Context(), sessionID)
	if err != nil {
		logger.Warn("WebSocket rejected: unknown session", zap.String("sessionID", sessionID))
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session_not_found"})
	}

	wsConn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	cn := &conn{
		ws:         wsConn,
		send:       make(chan serverMessage, 16),
		sessionID:  sessionID,
		interviews: interviews,
		speech:     speech,
		logger:     logger,
	}
	for _, msg := range session.Messages {
		cn.history = append(cn.history, entities.ConversationMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	cn.questionNumber = session.QuestionsAsked

	go cn.writePump()

	cn.send <- cn.withAudio(c.Request().Context(), serverMessage{
		Type: "welcome",
	}, usecase.WelcomeMessage)

	cn.readPump()
	return nil
}

// readPump pumps candidate frames off the connection until it closes.
func (c *conn) readPump() {
	defer func() {
		close(c.send)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.logger.Error("Failed to parse client message", zap.Error(err))
			c.send <- serverMessage{Type: "error", Error: "invalid_message"}
			continue
		}

		switch msg.Type {
		case "answer":
			c.handleAnswer(msg.Content)
		case "end":
			c.finish()
			return
		default:
			c.logger.Warn("Unknown message type", zap.String("type", msg.Type))
			c.send <- serverMessage{Type: "error", Error: "unknown_message_type"}
		}
	}
}

// writePump pumps server frames onto the connection and keeps it alive.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleAnswer records the candidate's answer and advances the interview.
func (c *conn) handleAnswer(answer string) {
	ctx := context.Background()

	if answer != "" {
		c.history = append(c.history, entities.ConversationMessage{Role: "user", Content: answer})
	}

	session, err := c.interviews.Session(ctx, c.sessionID)
	if err == nil && session.IsFinished() {
		c.finish()
		return
	}

	c.questionNumber++
	question := c.interviews.NextQuestion(ctx, c.history, c.questionNumber)
	c.history = append(c.history, entities.ConversationMessage{Role: "assistant", Content: question})
	c.interviews.RecordExchange(ctx, c.sessionID, answer, question)

	c.send <- c.withAudio(ctx, serverMessage{
		Type:           "question",
		QuestionNumber: c.questionNumber,
		Question:       question,
	}, question)
}

// finish sends the closing feedback frame.
func (c *conn) finish() {
	ctx := context.Background()
	feedback := c.interviews.Feedback(ctx, c.history)
	c.send <- serverMessage{Type: "feedback", Feedback: feedback}
}

// withAudio attaches synthesized speech for the given text to a frame. On
// quota exhaustion the frame carries no audio and the local-TTS flag instead.
func (c *conn) withAudio(ctx context.Context, msg serverMessage, text string) serverMessage {
	result, err := c.speech.Synthesize(ctx, text)
	if err != nil {
		c.logger.Error("Failed to synthesize frame audio", zap.Error(err))
		msg.TTSFallback = true
		return msg
	}

	if result.Reason == usecase.FallbackQuota {
		msg.TTSFallback = true
		return msg
	}

	msg.Audio = base64.StdEncoding.EncodeToString(result.Audio)
	return msg
}
