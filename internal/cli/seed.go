package cli

import (
	"context"
	"errors"
	"log"

	"learning-service/internal/app"
	"learning-service/internal/config"
	"learning-service/internal/domain"
	"learning-service/internal/infra/postgres"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads a sample catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users, a course, lectures and a quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return errors.New("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	return seedSample(ctx, app.NewAdminService(store, store, store), app.NewQuizService(store, store))
}

// seedSample creates an admin, a learner and one course with lectures and a
// quiz. Ids are logged so tokens can be minted for them.
func seedSample(ctx context.Context, admin *app.AdminService, quizzes *app.QuizService) error {
	root, err := admin.RegisterUser(ctx, "Admin", "admin@example.com", domain.RoleAdmin)
	if err != nil {
		return err
	}
	learner, err := admin.RegisterUser(ctx, "Learner", "learner@example.com", domain.RoleUser)
	if err != nil {
		return err
	}

	course, err := admin.CreateCourse(ctx, app.NewCourse{
		Title:       "Arithmetic basics",
		Description: "Counting, adding and a short quiz",
		Category:    "math",
		CreatedBy:   root.ID,
	})
	if err != nil {
		return err
	}
	for _, title := range []string{"Counting", "Addition"} {
		if _, err := admin.AddLecture(ctx, course.ID, app.NewLecture{Title: title}); err != nil {
			return err
		}
	}

	quiz, err := quizzes.CreateQuiz(ctx, app.NewQuiz{
		Title:    "Warm up",
		CourseID: course.ID,
		Questions: []domain.Question{
			{Question: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
			{Question: "What is 3 + 5?", Options: []string{"7", "8", "9"}, CorrectAnswer: "8"},
		},
	})
	if err != nil {
		return err
	}

	log.Printf("seeded admin=%s user=%s course=%s quiz=%s", root.ID, learner.ID, course.ID, quiz.ID)
	return nil
}
