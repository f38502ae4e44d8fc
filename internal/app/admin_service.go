package app

import (
	"context"
	"time"

	"learning-service/internal/domain"

	"github.com/google/uuid"
)

// AdminService covers catalog maintenance and user seeding.
type AdminService struct {
	users    UserRepository
	courses  CourseRepository
	lectures LectureRepository
	now      func() time.Time
}

func NewAdminService(users UserRepository, courses CourseRepository, lectures LectureRepository) *AdminService {
	return &AdminService{users: users, courses: courses, lectures: lectures, now: time.Now}
}

// NewCourse is the admin-supplied definition of a course.
type NewCourse struct {
	Title       string
	Description string
	Category    string
	CreatedBy   string
}

// NewLecture is the admin-supplied definition of a lecture.
type NewLecture struct {
	Title       string
	Description string
	Video       string
}

func (s *AdminService) CreateCourse(ctx context.Context, in NewCourse) (domain.Course, error) {
	course := domain.Course{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   s.now(),
	}
	if err := s.courses.CreateCourse(ctx, course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

// AddLecture attaches a new lecture to an existing course.
func (s *AdminService) AddLecture(ctx context.Context, courseID string, in NewLecture) (domain.Lecture, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return domain.Lecture{}, err
	}
	lecture := domain.Lecture{
		ID:          uuid.NewString(),
		CourseID:    course.ID,
		Title:       in.Title,
		Description: in.Description,
		Video:       in.Video,
		CreatedAt:   s.now(),
	}
	if err := s.lectures.CreateLecture(ctx, lecture); err != nil {
		return domain.Lecture{}, err
	}
	return lecture, nil
}

// RegisterUser creates a user record. Credentials are handled elsewhere.
func (s *AdminService) RegisterUser(ctx context.Context, name, email string, role domain.Role) (domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	now := s.now()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		Subscription: []string{},
		QuizResults:  []domain.QuizResult{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *AdminService) Stats(ctx context.Context) (domain.Stats, error) {
	courses, err := s.courses.CountCourses(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	lectures, err := s.lectures.CountLectures(ctx, "")
	if err != nil {
		return domain.Stats{}, err
	}
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{TotalCourses: courses, TotalLectures: lectures, TotalUsers: users}, nil
}
