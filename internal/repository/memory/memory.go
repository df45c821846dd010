// Package memory provides in-process implementations of the domain
// repositories. It backs STORE=memory runs and the handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/nguyentrongphuc/python-api-development/internal/domain"
)

// Store holds categories and questions in memory
type Store struct {
	mu         sync.RWMutex
	categories []domain.Category
	questions  []domain.Question
	nextID     int
}

// NewStore creates a store seeded with the given categories
func NewStore(categories ...domain.Category) *Store {
	s := &Store{nextID: 1}
	s.categories = append(s.categories, categories...)
	slices.SortFunc(s.categories, func(a, b domain.Category) int { return a.ID - b.ID })
	return s
}

// Categories returns a domain.CategoryRepository view of the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// Questions returns a domain.QuestionRepository view of the store
func (s *Store) Questions() *QuestionRepository {
	return &QuestionRepository{store: s}
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	store *Store
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return slices.Clone(r.store.categories), nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, c := range r.store.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// QuestionRepository implements domain.QuestionRepository
type QuestionRepository struct {
	store *Store
}

// List retrieves every question ordered by id
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	return r.filter(func(domain.Question) bool { return true }), nil
}

// ListByCategory retrieves the questions of one category ordered by id
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	return r.filter(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

// Search retrieves questions whose text contains term, ignoring case
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	term = strings.ToLower(term)
	return r.filter(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), nil
}

// ListForQuiz retrieves the questions of a quiz category, skipping the ids in exclude
func (r *QuestionRepository) ListForQuiz(ctx context.Context, category domain.QuizCategory, exclude []int) ([]domain.Question, error) {
	return r.filter(func(q domain.Question) bool {
		return category.Matches(q) && !slices.Contains(exclude, q.ID)
	}), nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, q := range r.store.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

// Create inserts a question and fills in its ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	question.ID = r.store.nextID
	r.store.nextID++
	r.store.questions = append(r.store.questions, *question)
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := slices.IndexFunc(r.store.questions, func(q domain.Question) bool { return q.ID == id })
	if i < 0 {
		return domain.ErrQuestionNotFound
	}
	r.store.questions = slices.Delete(r.store.questions, i, i+1)
	return nil
}

func (r *QuestionRepository) filter(keep func(domain.Question) bool) []domain.Question {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []domain.Question{}
	for _, q := range r.store.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// Ping always succeeds; the store lives in process
func (s *Store) Ping(ctx context.Context) error {
	return nil
}
