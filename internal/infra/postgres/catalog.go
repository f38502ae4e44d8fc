package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"learning-service/internal/domain"
)

func (s *Store) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM courses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return scanDocuments[domain.Course](rows)
}

func (s *Store) GetCourse(ctx context.Context, courseID string) (domain.Course, error) {
	var course domain.Course
	if err := s.getDocument(ctx, `SELECT data FROM courses WHERE id=$1`, &course, domain.ErrCourseNotFound, courseID); err != nil {
		if err == domain.ErrCourseNotFound {
			return domain.Course{}, err
		}
		return domain.Course{}, fmt.Errorf("load course: %w", err)
	}
	return course, nil
}

func (s *Store) FindCourses(ctx context.Context, courseIDs []string) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM courses WHERE id = ANY($1) ORDER BY created_at, id`, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	return scanDocuments[domain.Course](rows)
}

func (s *Store) CreateCourse(ctx context.Context, course domain.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO courses (id, created_at, data) VALUES ($1, $2, $3::jsonb)`,
		course.ID, course.CreatedAt, string(data))
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (s *Store) CountCourses(ctx context.Context) (int, error) {
	n, err := s.count(ctx, `SELECT count(*) FROM courses`)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

func (s *Store) ListLectures(ctx context.Context, courseID string) ([]domain.Lecture, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM lectures WHERE course_id=$1 ORDER BY created_at, id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return scanDocuments[domain.Lecture](rows)
}

func (s *Store) GetLecture(ctx context.Context, lectureID string) (domain.Lecture, error) {
	var lecture domain.Lecture
	if err := s.getDocument(ctx, `SELECT data FROM lectures WHERE id=$1`, &lecture, domain.ErrLectureNotFound, lectureID); err != nil {
		if err == domain.ErrLectureNotFound {
			return domain.Lecture{}, err
		}
		return domain.Lecture{}, fmt.Errorf("load lecture: %w", err)
	}
	return lecture, nil
}

func (s *Store) CreateLecture(ctx context.Context, lecture domain.Lecture) error {
	data, err := json.Marshal(lecture)
	if err != nil {
		return fmt.Errorf("marshal lecture: %w", err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO lectures (id, course_id, created_at, data) VALUES ($1, $2, $3, $4::jsonb)`,
		lecture.ID, lecture.CourseID, lecture.CreatedAt, string(data))
	if err != nil {
		return fmt.Errorf("insert lecture: %w", err)
	}
	return nil
}

func (s *Store) CountLectures(ctx context.Context, courseID string) (int, error) {
	var (
		n   int
		err error
	)
	if courseID == "" {
		n, err = s.count(ctx, `SELECT count(*) FROM lectures`)
	} else {
		n, err = s.count(ctx, `SELECT count(*) FROM lectures WHERE course_id=$1`, courseID)
	}
	if err != nil {
		return 0, fmt.Errorf("count lectures: %w", err)
	}
	return n, nil
}
