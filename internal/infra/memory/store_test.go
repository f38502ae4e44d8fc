package memory

import (
	"context"
	"testing"
	"time"

	"learning-service/internal/domain"
)

func TestStoreUserIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	user := domain.User{ID: "u1", Subscription: []string{"c1"}}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	user.Subscription[0] = "mutated"
	got, err := store.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Subscription[0] != "c1" {
		t.Fatalf("stored user shares memory with caller: %+v", got.Subscription)
	}

	got.Subscription = append(got.Subscription, "c2")
	again, _ := store.GetUser(ctx, "u1")
	if len(again.Subscription) != 1 {
		t.Fatalf("expected unsaved change to be invisible, got %+v", again.Subscription)
	}
}

func TestStoreNotFoundSentinels(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.GetUser(ctx, "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := store.SaveUser(ctx, domain.User{ID: "x"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on save, got %v", err)
	}
	if _, err := store.GetCourse(ctx, "x"); err != domain.ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := store.GetLecture(ctx, "x"); err != domain.ErrLectureNotFound {
		t.Fatalf("expected ErrLectureNotFound, got %v", err)
	}
	if _, err := store.FindProgress(ctx, "c", "u"); err != domain.ErrProgressNotFound {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}
}

func TestStoreLectureQueries(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.CreateLecture(ctx, domain.Lecture{ID: "l2", CourseID: "c1", CreatedAt: base.Add(time.Minute)})
	_ = store.CreateLecture(ctx, domain.Lecture{ID: "l1", CourseID: "c1", CreatedAt: base})
	_ = store.CreateLecture(ctx, domain.Lecture{ID: "l3", CourseID: "c2", CreatedAt: base})

	lectures, err := store.ListLectures(ctx, "c1")
	if err != nil {
		t.Fatalf("list lectures: %v", err)
	}
	if len(lectures) != 2 || lectures[0].ID != "l1" || lectures[1].ID != "l2" {
		t.Fatalf("unexpected lectures %+v", lectures)
	}

	if n, _ := store.CountLectures(ctx, "c1"); n != 2 {
		t.Fatalf("expected 2 lectures in c1, got %d", n)
	}
	if n, _ := store.CountLectures(ctx, ""); n != 3 {
		t.Fatalf("expected 3 lectures total, got %d", n)
	}
}

func TestStoreGetQuizzesSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_ = store.CreateQuiz(ctx, sampleQuiz())

	quizzes, err := store.GetQuizzes(ctx, []string{"quiz-1", "gone"})
	if err != nil {
		t.Fatalf("get quizzes: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 resolved quiz, got %d", len(quizzes))
	}
	if _, ok := quizzes["quiz-1"]; !ok {
		t.Fatalf("expected quiz-1 resolved")
	}
}
