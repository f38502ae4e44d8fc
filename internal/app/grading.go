package app

import "learning-service/internal/domain"

// gradeAnswers pairs questions[i] with answers[i] and counts exact matches.
// A missing answer is never an error, it just does not match. Answers past the
// last question are ignored. courseID is copied onto every result when set.
func gradeAnswers(questions []domain.Question, answers []string, courseID string) (int, []domain.QuestionResult) {
	score := 0
	results := make([]domain.QuestionResult, 0, len(questions))
	for i, q := range questions {
		var userAnswer *string
		if i < len(answers) {
			a := answers[i]
			userAnswer = &a
		}
		isCorrect := userAnswer != nil && *userAnswer == q.CorrectAnswer
		if isCorrect {
			score++
		}
		results = append(results, domain.QuestionResult{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
			Course:        courseID,
		})
	}
	return score, results
}
