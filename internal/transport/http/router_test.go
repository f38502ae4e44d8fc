package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learning-service/internal/app"
	"learning-service/internal/domain"
	"learning-service/internal/infra/memory"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

type testEnv struct {
	server *httptest.Server
	store  *memory.Store
	admin  *app.AdminService
	users  map[string]domain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	quizzes := memory.NewQuizCache(store, time.Minute)
	svc := Services{
		Quizzes: app.NewQuizService(store, quizzes),
		Courses: app.NewCourseService(store, store, store, store),
		Admin:   app.NewAdminService(store, store, store),
	}
	server := httptest.NewServer(NewRouter(svc, NewAuthenticator(testSecret, store), nil))
	t.Cleanup(server.Close)

	env := &testEnv{server: server, store: store, admin: svc.Admin, users: map[string]domain.User{}}
	env.register(t, "alice", domain.RoleUser)
	env.register(t, "root", domain.RoleAdmin)
	return env
}

func (e *testEnv) register(t *testing.T, name string, role domain.Role) {
	t.Helper()
	user, err := e.admin.RegisterUser(context.Background(), name, name+"@example.com", role)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	e.users[name] = user
}

func (e *testEnv) token(t *testing.T, name string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   e.users[name].ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, as string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(t, as))
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func (e *testEnv) seedCourse(t *testing.T, lectures int) domain.Course {
	t.Helper()
	ctx := context.Background()
	course, err := e.admin.CreateCourse(ctx, app.NewCourse{Title: "Go 101"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	for i := 0; i < lectures; i++ {
		if _, err := e.admin.AddLecture(ctx, course.ID, app.NewLecture{Title: "lecture"}); err != nil {
			t.Fatalf("add lecture: %v", err)
		}
	}
	return course
}

func TestQuizSubmitAndResults(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 0)

	status, body := env.do(t, http.MethodPost, "/api/quiz/new", "root", map[string]any{
		"title":    "Basics",
		"courseId": course.ID,
		"questions": []map[string]any{
			{"question": "Q1", "options": []string{"A", "B"}, "correctAnswer": "A"},
			{"question": "Q2", "options": []string{"B", "C"}, "correctAnswer": "C"},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create quiz: status %d body %v", status, body)
	}
	quizID := body["quiz"].(map[string]any)["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/quiz/submit", "alice", map[string]any{
		"quizId":  quizID,
		"answers": []string{"A", "B"},
	})
	if status != http.StatusOK {
		t.Fatalf("submit: status %d body %v", status, body)
	}
	if body["score"].(float64) != 1 {
		t.Fatalf("expected score 1, got %v", body["score"])
	}
	results := body["results"].([]any)
	if !results[0].(map[string]any)["isCorrect"].(bool) || results[1].(map[string]any)["isCorrect"].(bool) {
		t.Fatalf("unexpected results %v", results)
	}

	status, body = env.do(t, http.MethodGet, "/api/quiz/results/"+quizID, "alice", nil)
	if status != http.StatusOK {
		t.Fatalf("results: status %d body %v", status, body)
	}
	first := body["results"].([]any)[0].(map[string]any)
	if first["course"] != course.ID || first["userAnswer"] != "A" {
		t.Fatalf("unexpected reconciled result %v", first)
	}
}

func TestQuizNotFoundMessages(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/quiz/missing", "alice", nil)
	if status != http.StatusNotFound || body["message"] != "Quiz not found" {
		t.Fatalf("expected 404 Quiz not found, got %d %v", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/quiz/results/missing", "alice", nil)
	if status != http.StatusNotFound || body["message"] != "Quiz results not found" {
		t.Fatalf("expected 404 Quiz results not found, got %d %v", status, body)
	}
}

func TestAuthAndAdminGuards(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/mycourse", "", nil)
	if status != http.StatusUnauthorized || body["message"] != "Please Login" {
		t.Fatalf("expected 401, got %d %v", status, body)
	}

	status, _ = env.do(t, http.MethodPost, "/api/quiz/new", "alice", map[string]any{"title": "x", "courseId": "c"})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", status)
	}

	status, body = env.do(t, http.MethodPost, "/api/quiz/new", "root", map[string]any{"courseId": "c"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d %v", status, body)
	}
}

func TestLecturesSubscriptionGate(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 2)

	status, body := env.do(t, http.MethodGet, "/api/lectures/"+course.ID, "root", nil)
	if status != http.StatusOK {
		t.Fatalf("admin lectures: status %d body %v", status, body)
	}
	if len(body["lectures"].([]any)) != 2 {
		t.Fatalf("expected full lecture list for admin, got %v", body["lectures"])
	}

	status, body = env.do(t, http.MethodGet, "/api/lectures/"+course.ID, "alice", nil)
	if status != http.StatusBadRequest || body["message"] != "You have not subscribed to this course" {
		t.Fatalf("expected 400 for unsubscribed user, got %d %v", status, body)
	}

	if status, body = env.do(t, http.MethodPost, "/api/course/subscribe/"+course.ID, "alice", nil); status != http.StatusOK {
		t.Fatalf("subscribe: status %d body %v", status, body)
	}
	if status, _ = env.do(t, http.MethodGet, "/api/lectures/"+course.ID, "alice", nil); status != http.StatusOK {
		t.Fatalf("expected access after subscribing, got %d", status)
	}

	status, body = env.do(t, http.MethodPost, "/api/course/subscribe/"+course.ID, "alice", nil)
	if status != http.StatusBadRequest || body["message"] != "You already have this course" {
		t.Fatalf("expected 400 on second subscribe, got %d %v", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/mycourse", "alice", nil)
	if status != http.StatusOK || len(body["courses"].([]any)) != 1 {
		t.Fatalf("expected one subscribed course, got %d %v", status, body)
	}
}

func TestProgressEndpoint(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 4)

	status, body := env.do(t, http.MethodGet, "/api/progress/"+course.ID, "alice", nil)
	if status != http.StatusNotFound || body["message"] != "Progress not found" {
		t.Fatalf("expected 404 Progress not found, got %d %v", status, body)
	}

	env.do(t, http.MethodPost, "/api/course/subscribe/"+course.ID, "alice", nil)
	lectures, _ := env.store.ListLectures(context.Background(), course.ID)
	for _, l := range lectures[:2] {
		status, body = env.do(t, http.MethodPost, "/api/progress/"+course.ID+"/lectures/"+l.ID, "alice", nil)
		if status != http.StatusOK {
			t.Fatalf("complete lecture: status %d body %v", status, body)
		}
	}

	status, body = env.do(t, http.MethodGet, "/api/progress/"+course.ID, "alice", nil)
	if status != http.StatusOK {
		t.Fatalf("progress: status %d body %v", status, body)
	}
	if body["courseProgressPercentage"].(float64) != 50 || body["completedLectures"].(float64) != 2 || body["totalLectures"].(float64) != 4 {
		t.Fatalf("unexpected progress %v", body)
	}
}

func TestProgressWithoutLecturesIsNull(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 0)
	env.do(t, http.MethodPost, "/api/course/subscribe/"+course.ID, "alice", nil)

	status, body := env.do(t, http.MethodGet, "/api/progress/"+course.ID, "alice", nil)
	if status != http.StatusOK {
		t.Fatalf("progress: status %d body %v", status, body)
	}
	if v, ok := body["courseProgressPercentage"]; !ok || v != nil {
		t.Fatalf("expected null percentage, got %v (present=%v)", v, ok)
	}
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourse(t, 3)

	status, body := env.do(t, http.MethodGet, "/api/admin/stats", "root", nil)
	if status != http.StatusOK {
		t.Fatalf("stats: status %d body %v", status, body)
	}
	stats := body["stats"].(map[string]any)
	if stats["totalCourses"].(float64) != 1 || stats["totalLectures"].(float64) != 3 || stats["totalUsers"].(float64) != 2 {
		t.Fatalf("unexpected stats %v", stats)
	}
}
