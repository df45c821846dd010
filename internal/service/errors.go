package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// invalidInput wraps a validator failure in a domain sentinel so callers can
// tell bad input from store failures
func invalidInput(sentinel error, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("%w: %s failed on %q", sentinel, f.Field(), f.Tag())
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
