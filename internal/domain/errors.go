package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizResultsNotFound is returned when a user has no stored attempt for a quiz.
	ErrQuizResultsNotFound = errors.New("quiz results not found")
	// ErrProgressNotFound is returned when no progress record exists for (user, course).
	ErrProgressNotFound = errors.New("progress not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLectureNotFound  = errors.New("lecture not found")

	// ErrAlreadySubscribed rejects a second subscription to the same course.
	ErrAlreadySubscribed = errors.New("already subscribed to course")
	// ErrNotSubscribed rejects access to lectures of a course the user does not hold.
	ErrNotSubscribed = errors.New("not subscribed to course")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)
