package memory

import (
	"time"

	"ai-learning-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// AnswerRepository keeps quiz answer keys server side so the quiz payload
// sent to clients never carries the correct index or explanation.
type AnswerRepository struct {
	cache *cache.Cache
}

func NewAnswerRepository(ttl time.Duration) *AnswerRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired answer keys every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &AnswerRepository{
		cache: c,
	}
}

// Save replaces the whole answer key for a session. Answers are stored per
// quiz, so generating a new quiz overwrites the previous key.
func (r *AnswerRepository) Save(sessionId string, answers []entity.QuizAnswer) {
	r.cache.Set(sessionId, answers, cache.DefaultExpiration)
}

func (r *AnswerRepository) Get(sessionId string, questionIndex int) (*entity.QuizAnswer, bool) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, false
	}
	answers := x.([]entity.QuizAnswer)
	if questionIndex < 0 || questionIndex >= len(answers) {
		return nil, false
	}
	answer := answers[questionIndex]
	return &answer, true
}

func (r *AnswerRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
