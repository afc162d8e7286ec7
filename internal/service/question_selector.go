package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
)

// QuestionSelector picks practice questions from a pool, biased toward
// material the user has seen least. Unanswered questions always come first;
// when they run out, answered questions are taken in ascending order of how
// often the user has answered them.
type QuestionSelector struct {
	rng *rand.Rand
}

// NewQuestionSelector creates a selector backed by a time-seeded random
// source.
func NewQuestionSelector() *QuestionSelector {
	return NewQuestionSelectorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionSelectorWithRand creates a selector using the provided random
// source. Tests pass a fixed seed to make the shuffle deterministic.
func NewQuestionSelectorWithRand(rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{rng: rng}
}

// Select returns up to limit questions from the pool.
//
// The pool is partitioned by the user's answer history into unanswered and
// answered questions. If enough unanswered questions exist they are sampled
// uniformly; otherwise all of them are taken and the balance is filled with
// the least-answered questions, with the combined result shuffled. When
// everything has been answered, the least-answered questions win outright.
//
// The result size is always min(limit, pool size). A non-positive limit
// yields an empty result.
func (s *QuestionSelector) Select(
	pool []*domain.Question,
	history []*domain.UserAnswer,
	limit int,
) []*domain.Question {
	if limit <= 0 || len(pool) == 0 {
		return []*domain.Question{}
	}

	counts := answerCounts(history)

	var unanswered, answered []*domain.Question
	for _, question := range pool {
		if counts[question.ID] == 0 {
			unanswered = append(unanswered, question)
		} else {
			answered = append(answered, question)
		}
	}

	if len(unanswered) >= limit {
		sample := append([]*domain.Question(nil), unanswered...)
		s.rng.Shuffle(len(sample), func(i, j int) {
			sample[i], sample[j] = sample[j], sample[i]
		})
		return sample[:limit]
	}

	sortByAnswerCount(answered, counts)

	if len(unanswered) == 0 {
		if limit > len(answered) {
			limit = len(answered)
		}
		return answered[:limit]
	}

	selected := append([]*domain.Question(nil), unanswered...)
	needed := limit - len(selected)
	if needed > len(answered) {
		needed = len(answered)
	}
	selected = append(selected, answered[:needed]...)

	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if limit > len(selected) {
		limit = len(selected)
	}
	return selected[:limit]
}

// answerCounts tallies how many history entries reference each question.
func answerCounts(history []*domain.UserAnswer) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int, len(history))
	for _, entry := range history {
		counts[entry.QuestionID]++
	}
	return counts
}

// sortByAnswerCount orders questions ascending by answer frequency, keeping
// the original order among equally-answered questions.
func sortByAnswerCount(questions []*domain.Question, counts map[uuid.UUID]int) {
	sort.SliceStable(questions, func(i, j int) bool {
		return counts[questions[i].ID] < counts[questions[j].ID]
	})
}
