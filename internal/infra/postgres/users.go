package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"learning-service/internal/domain"
)

func (s *Store) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var user domain.User
	if err := s.getDocument(ctx, `SELECT data FROM users WHERE id=$1`, &user, domain.ErrUserNotFound, userID); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO users (id, data) VALUES ($1, $2::jsonb)`, user.ID, string(data)); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// SaveUser overwrites the whole user document; concurrent saves are last-write-wins.
func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	return s.updateDocument(ctx, "users", user.ID, user, domain.ErrUserNotFound)
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	n, err := s.count(ctx, `SELECT count(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
