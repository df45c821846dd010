package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nguyentrongphuc/python-api-development/internal/domain"
	"github.com/nguyentrongphuc/python-api-development/internal/pagination"
	"github.com/nguyentrongphuc/python-api-development/internal/validation"
)

// CreateQuestionRequest carries the fields of a new question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int    `json:"category" validate:"gt=0"`
	Difficulty int    `json:"difficulty" validate:"gt=0"`
}

// QuestionPage is one page of a question listing
type QuestionPage struct {
	Questions []domain.Question
	// Total counts every match, not just the page
	Total int
}

// QuestionListing is a page of all questions alongside every category
type QuestionListing struct {
	QuestionPage
	Categories []domain.Category
}

// CategoryQuestions is a page of the questions of one category
type CategoryQuestions struct {
	QuestionPage
	Category domain.Category
}

// AnswerResult is the outcome of checking a submitted answer
type AnswerResult struct {
	Correct bool
	Answer  string
}

// Option configures a TriviaService
type Option func(*TriviaService)

// WithRand makes quiz selection draw from r
func WithRand(r *rand.Rand) Option {
	return func(s *TriviaService) {
		s.intn = r.Intn
	}
}

// TriviaService implements the trivia operations on top of the repositories
type TriviaService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	validate   *validator.Validate
	intn       func(n int) int
}

// NewTriviaService creates a new trivia service
func NewTriviaService(categories domain.CategoryRepository, questions domain.QuestionRepository, opts ...Option) *TriviaService {
	s := &TriviaService{
		categories: categories,
		questions:  questions,
		validate:   validator.New(),
		intn:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns every category, failing with domain.ErrNoCategories
// when there are none
func (s *TriviaService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, domain.ErrNoCategories
	}
	return categories, nil
}

// ListQuestions returns one page of all questions together with the
// categories. An empty page is domain.ErrPageNotFound.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionListing, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	current := pagination.Paginate(questions, page)
	if len(current) == 0 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrPageNotFound, page)
	}

	return &QuestionListing{
		QuestionPage: QuestionPage{Questions: current, Total: len(questions)},
		Categories:   categories,
	}, nil
}

// DeleteQuestion removes a question and reports whether it existed
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) (bool, error) {
	err := s.questions.Delete(ctx, id)
	if errors.Is(err, domain.ErrQuestionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SearchQuestions returns one page of the questions whose text contains
// term, ignoring case. No matches is an empty page, not an error.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	matches, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions: pagination.Paginate(matches, page),
		Total:     len(matches),
	}, nil
}

// CreateQuestion validates and stores a new question. Bad input is reported
// as domain.ErrInvalidQuestion.
func (s *TriviaService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*domain.Question, error) {
	req.Question = strings.TrimSpace(req.Question)
	req.Answer = strings.TrimSpace(req.Answer)

	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput(domain.ErrInvalidQuestion, err)
	}

	question := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// QuestionsByCategory returns one page of a category's questions. An unknown
// category is domain.ErrCategoryNotFound; an empty page is not an error.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID, page int) (*CategoryQuestions, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return &CategoryQuestions{
		QuestionPage: QuestionPage{
			Questions: pagination.Paginate(questions, page),
			Total:     len(questions),
		},
		Category: *category,
	}, nil
}

// NextQuizQuestion picks a random question from the quiz category that is
// not in previous. The draw is made from the requested page of candidates
// only, so with the default page it never reaches past the first ten.
// It returns nil when no candidate is left.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, category domain.QuizCategory, previous []int, page int) (*domain.Question, error) {
	candidates, err := s.questions.ListForQuiz(ctx, category, previous)
	if err != nil {
		return nil, err
	}

	current := pagination.Paginate(candidates, page)
	if len(current) == 0 {
		return nil, nil
	}

	q := current[s.intn(len(current))]
	return &q, nil
}

// CheckAnswer compares a submitted answer with the stored one
func (s *TriviaService) CheckAnswer(ctx context.Context, questionID int, answer string) (*AnswerResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", domain.ErrInvalidAnswer)
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct: validation.IsSimilarAnswer(answer, question.Answer),
		Answer:  question.Answer,
	}, nil
}
