package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"learning-service/internal/domain"
)

func (s *Store) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := s.getDocument(ctx, `SELECT data FROM quizzes WHERE id=$1`, &quiz, domain.ErrQuizNotFound, quizID); err != nil {
		if err == domain.ErrQuizNotFound {
			return domain.Quiz{}, err
		}
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

// GetQuizzes resolves many quiz references in a single round trip.
func (s *Store) GetQuizzes(ctx context.Context, quizIDs []string) (map[string]domain.Quiz, error) {
	out := make(map[string]domain.Quiz, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT data FROM quizzes WHERE id = ANY($1)`, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	quizzes, err := scanDocuments[domain.Quiz](rows)
	if err != nil {
		return nil, fmt.Errorf("scan quizzes: %w", err)
	}
	for _, q := range quizzes {
		out[q.ID] = q
	}
	return out, nil
}

func (s *Store) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO quizzes (id, course_id, data) VALUES ($1, $2, $3::jsonb)`,
		quiz.ID, quiz.CourseID, string(data))
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (s *Store) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE quizzes SET course_id=$2, data=$3::jsonb WHERE id=$1`,
		quiz.ID, quiz.CourseID, string(data))
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}
