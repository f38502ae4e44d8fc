package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"learning-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorMappings holds the client-facing status and message for every domain error.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrQuizNotFound, http.StatusNotFound, "Quiz not found"},
	{domain.ErrQuizResultsNotFound, http.StatusNotFound, "Quiz results not found"},
	{domain.ErrProgressNotFound, http.StatusNotFound, "Progress not found"},
	{domain.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
	{domain.ErrLectureNotFound, http.StatusNotFound, "Lecture not found"},
	{domain.ErrAlreadySubscribed, http.StatusBadRequest, "You already have this course"},
	{domain.ErrNotSubscribed, http.StatusBadRequest, "You have not subscribed to this course"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Please Login"},
	{domain.ErrForbidden, http.StatusForbidden, "You are not admin"},
}

// badRequest marks malformed input.
type badRequest struct {
	message string
}

func (e badRequest) Error() string { return e.message }

type messagePayload struct {
	Message string `json:"message"`
}

// statusFor maps err to an HTTP status and message. Unknown errors are 500
// with the raw error text.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	var br badRequest
	if errors.As(err, &br) {
		return http.StatusBadRequest, br.message
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, verrs.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, messagePayload{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// decodeRequest reads a JSON body into dst and validates its struct tags.
func decodeRequest(r *http.Request, validate *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest{message: "invalid request body"}
	}
	return validate.Struct(dst)
}
