package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"learning-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// QuizStore is the backing store the cache reads through to.
type QuizStore interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	GetQuizzes(ctx context.Context, quizIDs []string) (map[string]domain.Quiz, error)
	CreateQuiz(ctx context.Context, quiz domain.Quiz) error
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// QuizCache caches quizzes with TTL to avoid repeated DB hits. Writes go
// straight to the store and evict the cached copy.
type QuizCache struct {
	store QuizStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand
	rndMu sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(store QuizStore, ttl time.Duration) *QuizCache {
	return &QuizCache{
		store: store,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedQuiz),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := c.lookup(quizID); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		if quiz, ok := c.lookup(quizID); ok {
			return quiz, nil
		}

		quiz, err := c.store.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		if ttl := c.ttlWithJitter(); ttl > 0 {
			c.mu.Lock()
			c.cache[quizID] = cachedQuiz{quiz: quiz, expiresAt: c.clock().Add(ttl)}
			c.mu.Unlock()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// GetQuizzes always reads the store; bulk lookups are rare.
func (c *QuizCache) GetQuizzes(ctx context.Context, quizIDs []string) (map[string]domain.Quiz, error) {
	return c.store.GetQuizzes(ctx, quizIDs)
}

func (c *QuizCache) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	return c.store.CreateQuiz(ctx, quiz)
}

func (c *QuizCache) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := c.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	c.Invalidate(quiz.ID)
	return nil
}

// Invalidate drops the cached copy of a quiz.
func (c *QuizCache) Invalidate(quizID string) {
	c.mu.Lock()
	delete(c.cache, quizID)
	c.mu.Unlock()
}

func (c *QuizCache) lookup(quizID string) (domain.Quiz, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[quizID]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return domain.Quiz{}, false
	}
	return entry.quiz, true
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
