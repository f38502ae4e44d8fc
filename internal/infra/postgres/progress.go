package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"learning-service/internal/domain"
)

func (s *Store) FindProgress(ctx context.Context, courseID, userID string) (domain.Progress, error) {
	var progress domain.Progress
	err := s.getDocument(ctx, `SELECT data FROM progress WHERE course_id=$1 AND user_id=$2 ORDER BY id LIMIT 1`,
		&progress, domain.ErrProgressNotFound, courseID, userID)
	if err != nil {
		if err == domain.ErrProgressNotFound {
			return domain.Progress{}, err
		}
		return domain.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	return progress, nil
}

func (s *Store) CreateProgress(ctx context.Context, progress domain.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO progress (id, course_id, user_id, data) VALUES ($1, $2, $3, $4::jsonb)`,
		progress.ID, progress.CourseID, progress.UserID, string(data))
	if err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

func (s *Store) SaveProgress(ctx context.Context, progress domain.Progress) error {
	return s.updateDocument(ctx, "progress", progress.ID, progress, domain.ErrProgressNotFound)
}
