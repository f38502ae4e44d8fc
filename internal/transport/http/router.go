package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

// NewRouter wires every HTTP and websocket route.
func NewRouter(svc Services, auth *Authenticator, corsOrigins []string) http.Handler {
	validate := validator.New()
	h := &handlers{svc: svc, validate: validate}
	socket := NewQuizSocket(svc.Quizzes, validate)

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/course/all", h.listCourses)
		r.Get("/course/{id}", h.getCourse)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/lectures/{id}", h.listLectures)
			r.Get("/lecture/{id}", h.getLecture)
			r.Get("/mycourse", h.myCourses)
			r.Post("/course/subscribe/{id}", h.subscribe)
			r.Get("/progress/{id}", h.progress)
			r.Post("/progress/{courseId}/lectures/{lectureId}", h.completeLecture)

			r.Get("/quiz/{id}", h.getQuiz)
			r.Post("/quiz/submit", h.submitQuiz)
			r.Get("/quiz/results/{id}", h.quizResults)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/quiz/new", h.createQuiz)
				r.Put("/quiz/{id}", h.updateQuiz)
				r.Post("/admin/course/new", h.createCourse)
				r.Post("/admin/course/{id}/lectures", h.addLecture)
				r.Get("/admin/stats", h.stats)
			})
		})
	})

	r.With(auth.Middleware).Get("/ws/quiz", socket.ServeWS)
	return r
}
