package http

import (
	"net/http"

	"learning-service/internal/app"
	"learning-service/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Quizzes *app.QuizService
	Courses *app.CourseService
	Admin   *app.AdminService
}

type handlers struct {
	svc      Services
	validate *validator.Validate
}

// currentUser is only called behind the auth middleware.
func currentUser(r *http.Request) domain.User {
	user, _ := UserFromContext(r.Context())
	return user
}

// quiz

func (h *handlers) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	quiz, err := h.svc.Quizzes.CreateQuiz(r.Context(), req.toNewQuiz())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Quiz Created Successfully",
		"quiz":    quiz,
	})
}

func (h *handlers) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.svc.Quizzes.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quiz": quiz})
}

func (h *handlers) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var req updateQuizRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	quiz, err := h.svc.Quizzes.UpdateQuiz(r.Context(), chi.URLParam(r, "id"), req.toNewQuiz())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Quiz Updated Successfully",
		"quiz":    quiz,
	})
}

// submitQuiz always records the attempt for the authenticated user.
func (h *handlers) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.svc.Quizzes.SubmitQuiz(r.Context(), currentUser(r).ID, req.QuizID, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Quiz Submitted Successfully",
		"score":   sub.Score,
		"results": sub.Results,
	})
}

func (h *handlers) quizResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Quizzes.GetQuizResults(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// courses

func (h *handlers) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.Courses.ListCourses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *handlers) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.svc.Courses.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"course": course})
}

func (h *handlers) listLectures(w http.ResponseWriter, r *http.Request) {
	lectures, err := h.svc.Courses.ListLectures(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lectures": lectures})
}

func (h *handlers) getLecture(w http.ResponseWriter, r *http.Request) {
	lecture, err := h.svc.Courses.GetLecture(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lecture": lecture})
}

func (h *handlers) myCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.Courses.MyCourses(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *handlers) subscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Courses.Subscribe(r.Context(), currentUser(r).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messagePayload{Message: "Course Subscribed Successfully"})
}

func (h *handlers) progress(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Courses.GetProgress(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) completeLecture(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.Courses.CompleteLecture(r.Context(), currentUser(r).ID,
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lectureId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Progress Updated",
		"progress": progress,
	})
}

// admin

func (h *handlers) createCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	course, err := h.svc.Admin.CreateCourse(r.Context(), app.NewCourse{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   currentUser(r).ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Course Created Successfully",
		"course":  course,
	})
}

func (h *handlers) addLecture(w http.ResponseWriter, r *http.Request) {
	var req lectureRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	lecture, err := h.svc.Admin.AddLecture(r.Context(), chi.URLParam(r, "id"), app.NewLecture{
		Title:       req.Title,
		Description: req.Description,
		Video:       req.Video,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Lecture Added",
		"lecture": lecture,
	})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Admin.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
