package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidQuiz = errors.New("invalid quiz request")

// QuizCategory selects the pool a quiz draws from: every category, or a
// single one.
type QuizCategory struct {
	all bool
	id  int
}

// AllCategories is the quiz pool spanning every category
func AllCategories() QuizCategory {
	return QuizCategory{all: true}
}

// SpecificCategory is the quiz pool of a single category
func SpecificCategory(id int) QuizCategory {
	return QuizCategory{id: id}
}

// QuizCategoryFromID decodes the wire form where id 0 means every category
func QuizCategoryFromID(id int) (QuizCategory, error) {
	switch {
	case id < 0:
		return QuizCategory{}, fmt.Errorf("%w: category id %d", ErrInvalidQuiz, id)
	case id == 0:
		return AllCategories(), nil
	default:
		return SpecificCategory(id), nil
	}
}

// All reports whether the quiz spans every category
func (q QuizCategory) All() bool { return q.all }

// ID returns the selected category id and false when the quiz spans every category
func (q QuizCategory) ID() (int, bool) {
	return q.id, !q.all
}

// Matches reports whether a question belongs to the quiz pool
func (q QuizCategory) Matches(question Question) bool {
	return q.all || question.Category == q.id
}

func (q QuizCategory) String() string {
	if q.all {
		return "all"
	}
	return fmt.Sprintf("category %d", q.id)
}
