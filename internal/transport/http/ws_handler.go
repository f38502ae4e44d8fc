package http

import (
	"encoding/json"
	"log"
	"net/http"

	"learning-service/internal/app"
	"learning-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// QuizSocket serves quiz retrieval, submission and results over a websocket,
// for clients that keep one connection open while taking a quiz.
type QuizSocket struct {
	quizzes  *app.QuizService
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewQuizSocket(quizzes *app.QuizService, validate *validator.Validate) *QuizSocket {
	return &QuizSocket{
		quizzes:  quizzes,
		validate: validate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type resultsPayload struct {
	QuizID  string                  `json:"quizId"`
	Results []domain.QuestionResult `json:"results"`
}

// ServeWS upgrades an authenticated request and answers one message at a time.
func (h *QuizSocket) ServeWS(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer; gorilla connections do not allow concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		send <- h.handle(r, user.ID, inbound)
	}

	close(send)
	<-writerDone
}

func (h *QuizSocket) handle(r *http.Request, userID string, inbound inboundMessage) outboundMessage[any] {
	ctx := r.Context()
	switch inbound.Type {
	case "getQuiz":
		var payload quizRefRequest
		if err := h.decode(inbound.Payload, &payload); err != nil {
			return socketError(err)
		}
		quiz, err := h.quizzes.GetQuiz(ctx, payload.QuizID)
		if err != nil {
			return socketError(err)
		}
		return outboundMessage[any]{Type: "quiz", Payload: quiz}
	case "submit":
		var payload submitQuizRequest
		if err := h.decode(inbound.Payload, &payload); err != nil {
			return socketError(err)
		}
		sub, err := h.quizzes.SubmitQuiz(ctx, userID, payload.QuizID, payload.Answers)
		if err != nil {
			return socketError(err)
		}
		return outboundMessage[any]{Type: "submitted", Payload: sub}
	case "results":
		var payload quizRefRequest
		if err := h.decode(inbound.Payload, &payload); err != nil {
			return socketError(err)
		}
		results, err := h.quizzes.GetQuizResults(ctx, userID, payload.QuizID)
		if err != nil {
			return socketError(err)
		}
		return outboundMessage[any]{Type: "results", Payload: resultsPayload{QuizID: payload.QuizID, Results: results}}
	default:
		return outboundMessage[any]{Type: "error", Payload: messagePayload{Message: "unsupported message type"}}
	}
}

func (h *QuizSocket) decode(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return badRequest{message: "invalid payload"}
	}
	return h.validate.Struct(dst)
}

func socketError(err error) outboundMessage[any] {
	_, message := statusFor(err)
	return outboundMessage[any]{Type: "error", Payload: messagePayload{Message: message}}
}
