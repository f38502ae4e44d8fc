package http

import (
	"context"
	"testing"
	"time"

	"learning-service/internal/app"
	"learning-service/internal/domain"

	"github.com/gorilla/websocket"
)

func TestQuizSocketSubmitFlow(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 0)
	quiz, err := app.NewQuizService(env.store, env.store).CreateQuiz(context.Background(), app.NewQuiz{
		Title:    "Arithmetic",
		CourseID: course.ID,
		Questions: []domain.Question{
			{Question: "What is 2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	u := "ws" + env.server.URL[len("http"):] + "/ws/quiz?token=" + env.token(t, "alice")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send(t, conn, "getQuiz", map[string]any{"quizId": quiz.ID})
	if typ, payload := readNext(t, conn); typ != "quiz" || payload["id"] != quiz.ID {
		t.Fatalf("expected quiz message, got %s %v", typ, payload)
	}

	send(t, conn, "submit", map[string]any{"quizId": quiz.ID, "answers": []string{"4"}})
	typ, payload := readNext(t, conn)
	if typ != "submitted" || payload["score"].(float64) != 1 {
		t.Fatalf("expected submitted with score 1, got %s %v", typ, payload)
	}

	send(t, conn, "results", map[string]any{"quizId": quiz.ID})
	typ, payload = readNext(t, conn)
	if typ != "results" || len(payload["results"].([]any)) != 1 {
		t.Fatalf("expected results message, got %s %v", typ, payload)
	}

	send(t, conn, "results", map[string]any{"quizId": "unknown"})
	typ, payload = readNext(t, conn)
	if typ != "error" || payload["message"] != "Quiz results not found" {
		t.Fatalf("expected error message, got %s %v", typ, payload)
	}

	send(t, conn, "leaderboard", map[string]any{})
	if typ, _ := readNext(t, conn); typ != "error" {
		t.Fatalf("expected error for unsupported type, got %s", typ)
	}
}

func TestQuizSocketRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	u := "ws" + env.server.URL[len("http"):] + "/ws/quiz"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail without token")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401 response, got %+v", resp)
	}
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
