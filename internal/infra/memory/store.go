package memory

import (
	"context"
	"sort"
	"sync"

	"learning-service/internal/domain"
)

// Store is an in-memory document store implementing every app repository.
// Documents are copied on the way in and out so callers never share slices
// with stored state.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	courses  map[string]domain.Course
	lectures map[string]domain.Lecture
	quizzes  map[string]domain.Quiz
	progress map[string]domain.Progress
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		courses:  make(map[string]domain.Course),
		lectures: make(map[string]domain.Lecture),
		quizzes:  make(map[string]domain.Quiz),
		progress: make(map[string]domain.Progress),
	}
}

// users

func (s *Store) GetUser(_ context.Context, userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// courses

func (s *Store) ListCourses(_ context.Context) ([]domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sortCourses(out)
	return out, nil
}

func (s *Store) GetCourse(_ context.Context, courseID string) (domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[courseID]
	if !ok {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	return course, nil
}

func (s *Store) FindCourses(_ context.Context, courseIDs []string) ([]domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Course, 0, len(courseIDs))
	seen := make(map[string]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := s.courses[id]; ok {
			out = append(out, c)
		}
	}
	sortCourses(out)
	return out, nil
}

func (s *Store) CreateCourse(_ context.Context, course domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[course.ID] = course
	return nil
}

func (s *Store) CountCourses(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses), nil
}

// lectures

func (s *Store) ListLectures(_ context.Context, courseID string) ([]domain.Lecture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Lecture, 0)
	for _, l := range s.lectures {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetLecture(_ context.Context, lectureID string) (domain.Lecture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lecture, ok := s.lectures[lectureID]
	if !ok {
		return domain.Lecture{}, domain.ErrLectureNotFound
	}
	return lecture, nil
}

func (s *Store) CreateLecture(_ context.Context, lecture domain.Lecture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lectures[lecture.ID] = lecture
	return nil
}

func (s *Store) CountLectures(_ context.Context, courseID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if courseID == "" {
		return len(s.lectures), nil
	}
	n := 0
	for _, l := range s.lectures {
		if l.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

// quizzes

func (s *Store) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

func (s *Store) GetQuizzes(_ context.Context, quizIDs []string) (map[string]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Quiz, len(quizIDs))
	for _, id := range quizIDs {
		if quiz, ok := s.quizzes[id]; ok {
			out[id] = cloneQuiz(quiz)
		}
	}
	return out, nil
}

func (s *Store) CreateQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

func (s *Store) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

// progress

func (s *Store) FindProgress(_ context.Context, courseID, userID string) (domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Several records can exist after a racy double subscribe; the oldest id wins
	// to keep the lookup deterministic.
	var (
		found domain.Progress
		ok    bool
	)
	for _, p := range s.progress {
		if p.CourseID != courseID || p.UserID != userID {
			continue
		}
		if !ok || p.ID < found.ID {
			found, ok = p, true
		}
	}
	if !ok {
		return domain.Progress{}, domain.ErrProgressNotFound
	}
	return cloneProgress(found), nil
}

func (s *Store) CreateProgress(_ context.Context, progress domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[progress.ID] = cloneProgress(progress)
	return nil
}

func (s *Store) SaveProgress(_ context.Context, progress domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.progress[progress.ID]; !ok {
		return domain.ErrProgressNotFound
	}
	s.progress[progress.ID] = cloneProgress(progress)
	return nil
}

func sortCourses(courses []domain.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.Before(courses[j].CreatedAt)
		}
		return courses[i].ID < courses[j].ID
	})
}

func cloneUser(u domain.User) domain.User {
	u.Subscription = append([]string(nil), u.Subscription...)
	results := make([]domain.QuizResult, len(u.QuizResults))
	for i, r := range u.QuizResults {
		r.Answers = append([]string(nil), r.Answers...)
		results[i] = r
	}
	u.QuizResults = results
	return u
}

func cloneQuiz(q domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		questions[i] = question
	}
	q.Questions = questions
	return q
}

func cloneProgress(p domain.Progress) domain.Progress {
	p.CompletedLectures = append([]string{}, p.CompletedLectures...)
	return p
}
