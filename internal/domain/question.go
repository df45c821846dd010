package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrPageNotFound     = errors.New("page not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves every question ordered by id
	List(ctx context.Context) ([]Question, error)

	// ListByCategory retrieves the questions of one category ordered by id
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// Search retrieves questions whose text contains term, ignoring case
	Search(ctx context.Context, term string) ([]Question, error)

	// ListForQuiz retrieves the questions of a quiz category, skipping the
	// ids in exclude
	ListForQuiz(ctx context.Context, category QuizCategory, exclude []int) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and fills in its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question, returning ErrQuestionNotFound if it does not exist
	Delete(ctx context.Context, id int) error
}

// Question represents a quiz item
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}
