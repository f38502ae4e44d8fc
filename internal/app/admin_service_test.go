package app_test

import (
	"context"
	"testing"

	"learning-service/internal/app"
	"learning-service/internal/domain"
	"learning-service/internal/infra/memory"
)

func TestAdminCatalogAndStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	admin := app.NewAdminService(store, store, store)

	user, err := admin.RegisterUser(ctx, "Alice", "alice@example.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}

	course, err := admin.CreateCourse(ctx, app.NewCourse{Title: "Go", CreatedBy: user.ID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := admin.AddLecture(ctx, course.ID, app.NewLecture{Title: "Intro"}); err != nil {
		t.Fatalf("add lecture: %v", err)
	}
	if _, err := admin.AddLecture(ctx, "missing", app.NewLecture{Title: "Nope"}); err != domain.ErrCourseNotFound {
		t.Fatalf("expected course not found, got %v", err)
	}

	stats, err := admin.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != (domain.Stats{TotalCourses: 1, TotalLectures: 1, TotalUsers: 1}) {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
