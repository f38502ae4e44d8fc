package app

import (
	"context"
	"time"

	"learning-service/internal/domain"

	"github.com/google/uuid"
)

// UserRepository abstracts how user documents are stored (in-memory, Postgres, etc).
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
	SaveUser(ctx context.Context, user domain.User) error
	CountUsers(ctx context.Context) (int, error)
}

// QuizRepository loads and persists quiz definitions.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	// GetQuizzes resolves quiz references in bulk. Unknown ids are absent from the result.
	GetQuizzes(ctx context.Context, quizIDs []string) (map[string]domain.Quiz, error)
	CreateQuiz(ctx context.Context, quiz domain.Quiz) error
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// NewQuiz is the admin-supplied definition of a quiz.
type NewQuiz struct {
	Title     string
	CourseID  string
	Questions []domain.Question
}

// QuizService contains the quiz catalog, scoring and reconciliation use cases.
type QuizService struct {
	users   UserRepository
	quizzes QuizRepository
	now     func() time.Time
}

func NewQuizService(users UserRepository, quizzes QuizRepository) *QuizService {
	return &QuizService{users: users, quizzes: quizzes, now: time.Now}
}

// CreateQuiz stores a new quiz definition.
func (s *QuizService) CreateQuiz(ctx context.Context, in NewQuiz) (domain.Quiz, error) {
	quiz := domain.Quiz{
		ID:        uuid.NewString(),
		Title:     in.Title,
		CourseID:  in.CourseID,
		Questions: in.Questions,
		CreatedAt: s.now(),
	}
	if quiz.Questions == nil {
		quiz.Questions = []domain.Question{}
	}
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

// UpdateQuiz replaces the title and questions of an existing quiz. Stored
// results are not touched; they are re-graded against the new key on read.
func (s *QuizService) UpdateQuiz(ctx context.Context, quizID string, in NewQuiz) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Title = in.Title
	if in.CourseID != "" {
		quiz.CourseID = in.CourseID
	}
	quiz.Questions = in.Questions
	if quiz.Questions == nil {
		quiz.Questions = []domain.Question{}
	}
	if err := s.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// SubmitQuiz grades answers against the quiz by position and appends the
// attempt to the user's results. Repeated submissions append repeatedly.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, quizID string, answers []string) (domain.Submission, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Submission{}, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Submission{}, err
	}

	score, results := gradeAnswers(quiz.Questions, answers, "")

	if user.QuizResults == nil {
		user.QuizResults = []domain.QuizResult{}
	}
	user.QuizResults = append(user.QuizResults, domain.QuizResult{
		QuizID:  quizID,
		Score:   score,
		Answers: answers,
	})
	user.UpdatedAt = s.now()
	if err := s.users.SaveUser(ctx, user); err != nil {
		return domain.Submission{}, err
	}

	return domain.Submission{Score: score, Results: results}, nil
}

// GetQuizResults re-grades the user's stored attempt for quizID against the
// current quiz definition.
func (s *QuizService) GetQuizResults(ctx context.Context, userID, quizID string) ([]domain.QuestionResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated, err := s.populateQuizResults(ctx, user.QuizResults)
	if err != nil {
		return nil, err
	}
	stored, ok := findResult(populated, quizID)
	if !ok {
		return nil, domain.ErrQuizResultsNotFound
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	_, results := gradeAnswers(quiz.Questions, stored.Answers, quiz.CourseID)
	return results, nil
}

// populatedResult pairs a stored attempt with the quiz its reference resolves to.
type populatedResult struct {
	domain.QuizResult
	Quiz domain.Quiz
}

// populateQuizResults resolves every quiz reference in one lookup. Attempts
// whose quiz no longer exists are dropped.
func (s *QuizService) populateQuizResults(ctx context.Context, stored []domain.QuizResult) ([]populatedResult, error) {
	if len(stored) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, r := range stored {
		if _, ok := seen[r.QuizID]; ok {
			continue
		}
		seen[r.QuizID] = struct{}{}
		ids = append(ids, r.QuizID)
	}

	quizzes, err := s.quizzes.GetQuizzes(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]populatedResult, 0, len(stored))
	for _, r := range stored {
		quiz, ok := quizzes[r.QuizID]
		if !ok {
			continue
		}
		out = append(out, populatedResult{QuizResult: r, Quiz: quiz})
	}
	return out, nil
}

// findResult returns the first stored attempt for quizID.
func findResult(results []populatedResult, quizID string) (populatedResult, bool) {
	for _, r := range results {
		if r.Quiz.ID == quizID {
			return r, true
		}
	}
	return populatedResult{}, false
}
