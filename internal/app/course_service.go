package app

import (
	"context"
	"time"

	"learning-service/internal/domain"

	"github.com/google/uuid"
)

// CourseRepository loads and persists catalog courses.
type CourseRepository interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, courseID string) (domain.Course, error)
	// FindCourses returns the courses among ids that exist, in catalog order.
	FindCourses(ctx context.Context, courseIDs []string) ([]domain.Course, error)
	CreateCourse(ctx context.Context, course domain.Course) error
	CountCourses(ctx context.Context) (int, error)
}

// LectureRepository loads and persists lectures.
type LectureRepository interface {
	ListLectures(ctx context.Context, courseID string) ([]domain.Lecture, error)
	GetLecture(ctx context.Context, lectureID string) (domain.Lecture, error)
	CreateLecture(ctx context.Context, lecture domain.Lecture) error
	// CountLectures counts lectures of courseID, or all lectures when courseID is empty.
	CountLectures(ctx context.Context, courseID string) (int, error)
}

// ProgressRepository loads and persists per-(user, course) progress records.
type ProgressRepository interface {
	FindProgress(ctx context.Context, courseID, userID string) (domain.Progress, error)
	CreateProgress(ctx context.Context, progress domain.Progress) error
	SaveProgress(ctx context.Context, progress domain.Progress) error
}

// CourseService covers catalog reads, subscription and progress.
type CourseService struct {
	users    UserRepository
	courses  CourseRepository
	lectures LectureRepository
	progress ProgressRepository
	now      func() time.Time
}

func NewCourseService(users UserRepository, courses CourseRepository, lectures LectureRepository, progress ProgressRepository) *CourseService {
	return &CourseService{
		users:    users,
		courses:  courses,
		lectures: lectures,
		progress: progress,
		now:      time.Now,
	}
}

func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courses.ListCourses(ctx)
}

func (s *CourseService) GetCourse(ctx context.Context, courseID string) (domain.Course, error) {
	return s.courses.GetCourse(ctx, courseID)
}

// ListLectures returns the lectures of a course the user may access.
func (s *CourseService) ListLectures(ctx context.Context, userID, courseID string) ([]domain.Lecture, error) {
	lectures, err := s.lectures.ListLectures(ctx, courseID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !CanAccess(user, courseID) {
		return nil, domain.ErrNotSubscribed
	}
	return lectures, nil
}

// GetLecture returns a single lecture if the user may access its course.
func (s *CourseService) GetLecture(ctx context.Context, userID, lectureID string) (domain.Lecture, error) {
	lecture, err := s.lectures.GetLecture(ctx, lectureID)
	if err != nil {
		return domain.Lecture{}, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Lecture{}, err
	}
	if !CanAccess(user, lecture.CourseID) {
		return domain.Lecture{}, domain.ErrNotSubscribed
	}
	return lecture, nil
}

// MyCourses returns the courses in the user's subscription.
func (s *CourseService) MyCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Subscription) == 0 {
		return []domain.Course{}, nil
	}
	return s.courses.FindCourses(ctx, user.Subscription)
}

// Subscribe adds courseID to the user's subscription and opens a progress
// record. The two writes are independent; a failure between them leaves a
// subscription without progress.
func (s *CourseService) Subscribe(ctx context.Context, userID, courseID string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if isSubscribed(user, course.ID) {
		return domain.ErrAlreadySubscribed
	}

	user.Subscription = append(user.Subscription, course.ID)

	if err := s.progress.CreateProgress(ctx, domain.Progress{
		ID:                uuid.NewString(),
		CourseID:          course.ID,
		UserID:            user.ID,
		CompletedLectures: []string{},
	}); err != nil {
		return err
	}

	user.UpdatedAt = s.now()
	return s.users.SaveUser(ctx, user)
}

// GetProgress reports how much of a course the user has completed.
func (s *CourseService) GetProgress(ctx context.Context, userID, courseID string) (domain.ProgressReport, error) {
	progress, err := s.progress.FindProgress(ctx, courseID, userID)
	if err != nil {
		return domain.ProgressReport{}, err
	}
	total, err := s.lectures.CountLectures(ctx, courseID)
	if err != nil {
		return domain.ProgressReport{}, err
	}
	completed := len(progress.CompletedLectures)

	return domain.ProgressReport{
		Progress:                 progress,
		CourseProgressPercentage: completionPercentage(completed, total),
		CompletedLectures:        completed,
		TotalLectures:            total,
	}, nil
}

// CompleteLecture marks a lecture of the course as done. Completing the same
// lecture twice is a no-op.
func (s *CourseService) CompleteLecture(ctx context.Context, userID, courseID, lectureID string) (domain.Progress, error) {
	progress, err := s.progress.FindProgress(ctx, courseID, userID)
	if err != nil {
		return domain.Progress{}, err
	}
	lecture, err := s.lectures.GetLecture(ctx, lectureID)
	if err != nil {
		return domain.Progress{}, err
	}
	if lecture.CourseID != courseID {
		return domain.Progress{}, domain.ErrLectureNotFound
	}
	if progress.HasCompleted(lectureID) {
		return progress, nil
	}
	progress.CompletedLectures = append(progress.CompletedLectures, lectureID)
	if err := s.progress.SaveProgress(ctx, progress); err != nil {
		return domain.Progress{}, err
	}
	return progress, nil
}
