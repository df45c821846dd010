package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentrongphuc/python-api-development/internal/domain"
	"github.com/nguyentrongphuc/python-api-development/internal/pagination"
	"github.com/nguyentrongphuc/python-api-development/internal/service"
)

// TriviaHandler handles category, question and quiz HTTP requests
type TriviaHandler struct {
	trivia *service.TriviaService
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(trivia *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		trivia: trivia,
	}
}

// Register registers the trivia routes
func (h *TriviaHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id/questions", h.QuestionsByCategory)

	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateOrSearchQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion)
	e.POST("/questions/:id/answer", h.CheckAnswer)

	e.POST("/quizzes", h.NextQuizQuestion)
}

type categoriesResponse struct {
	Success         bool           `json:"success"`
	Categories      map[int]string `json:"categories"`
	TotalCategories int            `json:"total_categories"`
}

type questionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[int]string    `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

type searchResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory string            `json:"current_category"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

type answerResponse struct {
	Success bool   `json:"success"`
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// ListCategories returns every category as an id -> type mapping
func (h *TriviaHandler) ListCategories(c echo.Context) error {
	categories, err := h.trivia.ListCategories(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      domain.CategoryMap(categories),
		TotalCategories: len(categories),
	})
}

// ListQuestions returns a page of all questions with the categories
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
	page := pagination.ParsePage(c.QueryParam("page"))

	listing, err := h.trivia.ListQuestions(c.Request().Context(), page)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       listing.Questions,
		TotalQuestions:  listing.Total,
		Categories:      domain.CategoryMap(listing.Categories),
		TotalCategories: len(listing.Categories),
	})
}

// DeleteQuestion deletes a question. Deleting an unknown id is not an error;
// it is reported with success false.
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.trivia.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: deleted})
}

// CreateOrSearchQuestions searches when the body has a searchTerm and
// creates a question otherwise
func (h *TriviaHandler) CreateOrSearchQuestions(c echo.Context) error {
	var req questionsRequest
	if err := bindBody(c, &req, domain.ErrInvalidQuestion); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if req.SearchTerm != "" {
		page := pagination.ParsePage(c.QueryParam("page"))
		result, err := h.trivia.SearchQuestions(ctx, req.SearchTerm, page)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, searchResponse{
			Success:        true,
			Questions:      result.Questions,
			TotalQuestions: result.Total,
		})
	}

	if _, err := h.trivia.CreateQuestion(ctx, req.create()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// QuestionsByCategory returns a page of the questions of one category
func (h *TriviaHandler) QuestionsByCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	page := pagination.ParsePage(c.QueryParam("page"))

	result, err := h.trivia.QuestionsByCategory(c.Request().Context(), id, page)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: result.Category.Type,
	})
}

// NextQuizQuestion returns a random question not asked yet, or null when
// the quiz category is exhausted
func (h *TriviaHandler) NextQuizQuestion(c echo.Context) error {
	var req quizRequest
	if err := bindBody(c, &req, domain.ErrInvalidQuiz); err != nil {
		return err
	}
	if req.QuizCategory == nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(errors.New("quiz_category is required"))
	}

	category, err := domain.QuizCategoryFromID(int(req.QuizCategory.ID))
	if err != nil {
		return toHTTPError(err)
	}
	page := pagination.ParsePage(c.QueryParam("page"))

	question, err := h.trivia.NextQuizQuestion(c.Request().Context(), category, req.previous(), page)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, quizResponse{
		Success:  true,
		Question: question,
	})
}

// CheckAnswer tells whether a submitted answer matches the question's answer
func (h *TriviaHandler) CheckAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := bindBody(c, &req, domain.ErrInvalidAnswer); err != nil {
		return err
	}

	result, err := h.trivia.CheckAnswer(c.Request().Context(), id, req.Answer)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, answerResponse{
		Success: true,
		Correct: result.Correct,
		Answer:  result.Answer,
	})
}

// pathID parses the :id route parameter. Anything but an integer does not
// name a resource.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return id, nil
}

// toHTTPError maps service errors to HTTP errors
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoCategories),
		errors.Is(err, domain.ErrPageNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	case errors.Is(err, domain.ErrInvalidQuestion),
		errors.Is(err, domain.ErrInvalidAnswer):
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	case errors.Is(err, domain.ErrInvalidQuiz):
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}
