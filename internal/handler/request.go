package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentrongphuc/python-api-development/internal/service"
)

// bindBody decodes the request body into req. A body that is not JSON at all
// is a bad request; a JSON body with a field of the wrong type is reported
// as invalid, wrapped in the given domain error.
func bindBody(c echo.Context, req any, invalid error) error {
	err := c.Bind(req)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	// unsupported media type and the like carry no decode error
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal == nil {
		return he
	}
	return toHTTPError(fmt.Errorf("%w: %v", invalid, err))
}

// flexInt accepts a JSON number or a numeric string. The trivia front-end
// sends ids taken from object keys and form selects, which arrive as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// questionsRequest is the body of POST /questions, which either searches or
// creates depending on searchTerm
type questionsRequest struct {
	SearchTerm string  `json:"searchTerm"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

func (r questionsRequest) create() service.CreateQuestionRequest {
	return service.CreateQuestionRequest{
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   int(r.Category),
		Difficulty: int(r.Difficulty),
	}
}

// quizRequest is the body of POST /quizzes
type quizRequest struct {
	PreviousQuestions []flexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID   flexInt `json:"id"`
		Type string  `json:"type"`
	} `json:"quiz_category"`
}

func (r quizRequest) previous() []int {
	ids := make([]int, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = int(id)
	}
	return ids
}

// answerRequest is the body of POST /questions/:id/answer
type answerRequest struct {
	Answer string `json:"answer"`
}

// successResponse is the body of requests that only report an outcome
type successResponse struct {
	Success bool `json:"success"`
}
