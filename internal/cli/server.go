package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning-service/internal/app"
	"learning-service/internal/config"
	"learning-service/internal/infra/memory"
	"learning-service/internal/infra/postgres"
	infraredis "learning-service/internal/infra/redis"
	transport "learning-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// documentStore is everything the services persist. Both the Postgres and the
// in-memory store implement it.
type documentStore interface {
	app.UserRepository
	app.CourseRepository
	app.LectureRepository
	app.QuizRepository
	app.ProgressRepository
}

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("jwt secret not configured")
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var store documentStore
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	} else {
		log.Printf("no postgres url configured, using in-memory store")
		store = memory.NewStore()
	}

	quizzes := newQuizCache(cfg, store)
	svc := transport.Services{
		Quizzes: app.NewQuizService(store, quizzes),
		Courses: app.NewCourseService(store, store, store, store),
		Admin:   app.NewAdminService(store, store, store),
	}

	if cfg.Postgres.URL == "" {
		if err := seedSample(ctx, svc.Admin, svc.Quizzes); err != nil {
			return err
		}
	}

	auth := transport.NewAuthenticator(cfg.Auth.JWTSecret, store)
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(svc, auth, cfg.Server.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting learning service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newQuizCache puts a read-through cache in front of quiz lookups: Redis when
// configured, a process-local map otherwise.
func newQuizCache(cfg config.Config, store documentStore) app.QuizRepository {
	ttl := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	if cfg.Redis.Addr == "" {
		return memory.NewQuizCache(store, ttl)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return infraredis.NewQuizCache(client, store, ttl)
}
