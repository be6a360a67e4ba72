// Package quizzes clones quiz batches, rewrites their cross-quiz references and
// computes answer statistics.
package quizzes

import (
	"github.com/go-playground/validator/v10"

	"Quiznator-Backend/src/store"
	"Quiznator-Backend/src/utils"
)

// DefaultFanOut bounds the creates and updates a batch operation keeps in flight.
const DefaultFanOut = 20

type Service struct {
	quizzes     store.Collection
	answers     store.Collection
	peerReviews store.Collection
	batches     store.Collection

	cache           *StatsCache
	fanOut          int
	onRewriteFailed func(batchID string)
	validate        *validator.Validate
}

type Option func(*Service)

func WithFanOut(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fanOut = n
		}
	}
}

// WithBatchJournal persists every clone batch before its references are rewritten.
func WithBatchJournal(batches store.Collection) Option {
	return func(s *Service) { s.batches = batches }
}

func WithStatsCache(cache *StatsCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithRewriteFailureHandler is called with the batch id of every clone whose
// rewrite phase did not fully succeed.
func WithRewriteFailureHandler(fn func(batchID string)) Option {
	return func(s *Service) { s.onRewriteFailed = fn }
}

// NewService wires the quiz collection behind the tag and cascade hooks, so every
// create, update and remove issued by the service goes through them.
func NewService(quizzes, answers, peerReviews store.Collection, opts ...Option) *Service {
	s := &Service{
		answers:     answers,
		peerReviews: peerReviews,
		fanOut:      DefaultFanOut,
		validate:    utils.NewValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.quizzes = store.WithHooks(quizzes, store.Hooks{
		BeforeSave:   normalizeDocTags,
		BeforeUpdate: normalizePatchTags,
		BeforeRemove: s.removeDependents,
	})
	return s
}
