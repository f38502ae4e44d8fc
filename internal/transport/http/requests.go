package http

import (
	"learning-service/internal/app"
	"learning-service/internal/domain"
)

type questionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=1,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type quizRequest struct {
	Title     string            `json:"title" validate:"required"`
	CourseID  string            `json:"courseId" validate:"required"`
	Questions []questionRequest `json:"questions" validate:"dive"`
}

func (q quizRequest) toNewQuiz() app.NewQuiz {
	questions := make([]domain.Question, 0, len(q.Questions))
	for _, qr := range q.Questions {
		questions = append(questions, domain.Question{
			Question:      qr.Question,
			Options:       qr.Options,
			CorrectAnswer: qr.CorrectAnswer,
		})
	}
	return app.NewQuiz{Title: q.Title, CourseID: q.CourseID, Questions: questions}
}

// updateQuizRequest allows keeping the current course.
type updateQuizRequest struct {
	Title     string            `json:"title" validate:"required"`
	CourseID  string            `json:"courseId"`
	Questions []questionRequest `json:"questions" validate:"dive"`
}

func (q updateQuizRequest) toNewQuiz() app.NewQuiz {
	return quizRequest{Title: q.Title, CourseID: q.CourseID, Questions: q.Questions}.toNewQuiz()
}

// submitQuizRequest may carry fewer answers than the quiz has questions.
type submitQuizRequest struct {
	QuizID  string   `json:"quizId" validate:"required"`
	Answers []string `json:"answers"`
}

type quizRefRequest struct {
	QuizID string `json:"quizId" validate:"required"`
}

type courseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type lectureRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Video       string `json:"video" validate:"omitempty,url"`
}
