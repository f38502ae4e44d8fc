package domain

import "time"

// Role is the authorization role stored on a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a learner or administrator. Subscription and QuizResults only grow.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	Subscription []string     `json:"subscription"`
	QuizResults  []QuizResult `json:"quizResults"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// IsAdmin reports whether the user bypasses subscription checks.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// QuizResult is one stored submission attempt, embedded in the user document.
type QuizResult struct {
	QuizID  string   `json:"quiz"`
	Score   int      `json:"score"`
	Answers []string `json:"answers"`
}

// Course is a catalog entry that users subscribe to.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Lecture belongs to exactly one course.
type Lecture struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Video       string    `json:"video"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Question is a single quiz item. Its index in Quiz.Questions is the only key
// used to pair it with a submitted answer.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is an ordered list of questions owned by a course.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CourseID  string     `json:"course"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Progress tracks completed lectures for one (user, course) pair.
type Progress struct {
	ID                string   `json:"id"`
	CourseID          string   `json:"course"`
	UserID            string   `json:"user"`
	CompletedLectures []string `json:"completedLectures"`
}

// HasCompleted reports whether lectureID is already in the completed set.
func (p Progress) HasCompleted(lectureID string) bool {
	for _, id := range p.CompletedLectures {
		if id == lectureID {
			return true
		}
	}
	return false
}

// QuestionResult is the per-question outcome of grading. UserAnswer is nil when
// the submission had no answer at that position. Course is only set on
// reconciled results.
type QuestionResult struct {
	Question      string  `json:"question"`
	CorrectAnswer string  `json:"correctAnswer"`
	UserAnswer    *string `json:"userAnswer,omitempty"`
	IsCorrect     bool    `json:"isCorrect"`
	Course        string  `json:"course,omitempty"`
}

// Submission is the outcome of scoring one quiz attempt.
type Submission struct {
	Score   int              `json:"score"`
	Results []QuestionResult `json:"results"`
}

// ProgressReport is the computed view of a progress record.
type ProgressReport struct {
	Progress                 Progress   `json:"progress"`
	CourseProgressPercentage Percentage `json:"courseProgressPercentage"`
	CompletedLectures        int        `json:"completedLectures"`
	TotalLectures            int        `json:"totalLectures"`
}

// Stats summarizes catalog size for administrators.
type Stats struct {
	TotalCourses  int `json:"totalCourses"`
	TotalLectures int `json:"totalLectures"`
	TotalUsers    int `json:"totalUsers"`
}
