package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nguyentrongphuc/python-api-development/internal/domain"
	"github.com/nguyentrongphuc/python-api-development/internal/repository/memory"
	"github.com/nguyentrongphuc/python-api-development/internal/server"
	"github.com/nguyentrongphuc/python-api-development/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to set up router
func setupRouter(store *memory.Store) *echo.Echo {
	return server.New(server.Options{
		Trivia: service.NewTriviaService(store.Categories(), store.Questions()),
		Store:  store,
	})
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var data map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data), rec.Body.String())
	}
	return rec, data
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, data map[string]any, code int, message string) {
	t.Helper()
	assert.Equal(t, code, rec.Code)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, float64(code), data["error"])
	assert.Equal(t, message, data["message"])
}

func questionIDs(data map[string]any) []int {
	var ids []int
	for _, q := range data["questions"].([]any) {
		ids = append(ids, int(q.(map[string]any)["id"].(float64)))
	}
	return ids
}

func TestGetCategories(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(6), data["total_categories"])
	categories := data["categories"].(map[string]any)
	assert.Equal(t, "Science", categories["1"])
	assert.Equal(t, "Sports", categories["6"])
}

func TestGetCategoriesWhenNoneExist(t *testing.T) {
	e := setupRouter(memory.NewStore())

	rec, data := do(t, e, http.MethodGet, "/categories", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestGetPaginatedQuestions(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodGet, "/questions?page=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Len(t, data["questions"], 10)
	assert.Equal(t, float64(12), data["total_questions"])
	assert.Equal(t, float64(6), data["total_categories"])
	assert.NotEmpty(t, data["categories"])

	_, data = do(t, e, http.MethodGet, "/questions?page=2", "")
	assert.Equal(t, []int{11, 12}, questionIDs(data))

	_, data = do(t, e, http.MethodGet, "/questions?page=abc", "")
	assert.Len(t, data["questions"], 10)
}

func TestGetQuestionsSamePageTwice(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	first, _ := do(t, e, http.MethodGet, "/questions?page=1", "")
	second, _ := do(t, e, http.MethodGet, "/questions?page=1", "")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetQuestionsBeyondValidPage(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodGet, "/questions?page=1000", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestGetQuestionsHugePage(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	for _, page := range []string{"922337203685477582", "99999999999999999999"} {
		rec, data := do(t, e, http.MethodGet, "/questions?page="+page, "")
		assertError(t, rec, data, http.StatusNotFound, "resource not found")

		rec, data = do(t, e, http.MethodGet, "/categories/1/questions?page="+page, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, data["questions"])
		assert.Equal(t, float64(3), data["total_questions"])

		rec, data = do(t, e, http.MethodPost, "/questions?page="+page, `{"searchTerm":"autobiography"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, data["questions"])
		assert.Equal(t, float64(1), data["total_questions"])
	}
}

func TestGetQuestionsWithoutCategories(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Questions().Create(context.Background(), &domain.Question{Question: "q", Answer: "a", Category: 1, Difficulty: 1}))
	e := setupRouter(store)

	rec, data := do(t, e, http.MethodGet, "/questions", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestSearchQuestions(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/questions", `{"searchTerm":"autobiography"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(1), data["total_questions"])
	assert.Equal(t, []int{1}, questionIDs(data))

	rec, data = do(t, e, http.MethodPost, "/questions", `{"searchTerm":"WORLD CUP"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), data["total_questions"])
}

func TestSearchQuestionsWithoutResults(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/questions", `{"searchTerm":"zzzznomatch"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(0), data["total_questions"])
	assert.Equal(t, []any{}, data["questions"])
}

func TestCreateQuestion(t *testing.T) {
	store := memory.NewSampleStore()
	e := setupRouter(store)

	rec, data := do(t, e, http.MethodPost, "/questions", `{"question":"q2","answer":"a2","difficulty":1,"category":6}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, data)

	// the front-end posts select values as strings
	rec, _ = do(t, e, http.MethodPost, "/questions", `{"question":"q3","answer":"a3","difficulty":"2","category":"5","searchTerm":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	created, err := store.Questions().GetByID(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, domain.Question{ID: 14, Question: "q3", Answer: "a3", Category: 5, Difficulty: 2}, *created)
}

func TestCreateQuestionUnprocessable(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	for _, body := range []string{
		`{}`,
		`{"question":"q","answer":"a","category":1}`,
		`{"question":"  ","answer":"a","difficulty":1,"category":1}`,
		`{"question":"q","answer":"a","difficulty":1,"category":"0"}`,
	} {
		rec, data := do(t, e, http.MethodPost, "/questions", body)
		assertError(t, rec, data, http.StatusUnprocessableEntity, "unprocessable")
	}
}

func TestCreateQuestionWrongFieldType(t *testing.T) {
	store := memory.NewSampleStore()
	e := setupRouter(store)

	for _, body := range []string{
		`{"question":"q","answer":"a","difficulty":1,"category":"six"}`,
		`{"question":5,"answer":"a","difficulty":1,"category":1}`,
		`{"question":"q","answer":"a","difficulty":1.5,"category":1}`,
		`{"question":"q","answer":["a"],"difficulty":1,"category":1}`,
	} {
		rec, data := do(t, e, http.MethodPost, "/questions", body)
		assertError(t, rec, data, http.StatusUnprocessableEntity, "unprocessable")
	}

	_, err := store.Questions().GetByID(context.Background(), 13)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestCreateQuestionBadRequest(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	for _, body := range []string{
		`{"question":`,
		`{"question":"q",}`,
		`not json`,
	} {
		rec, data := do(t, e, http.MethodPost, "/questions", body)
		assertError(t, rec, data, http.StatusBadRequest, "bad request")
	}
}

func TestDeleteQuestion(t *testing.T) {
	store := memory.NewSampleStore()
	e := setupRouter(store)

	rec, data := do(t, e, http.MethodDelete, "/questions/12", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, data)

	_, err := store.Questions().GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, data = do(t, e, http.MethodGet, "/categories/1/questions", "")
	assert.NotContains(t, questionIDs(data), 12)
}

func TestDeleteMissingQuestion(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodDelete, "/questions/9999", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": false}, data)

	rec, data = do(t, e, http.MethodDelete, "/questions/abc", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestGetQuestionsByCategory(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodGet, "/categories/1/questions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "Science", data["current_category"])
	assert.Equal(t, float64(3), data["total_questions"])
	assert.Equal(t, []int{10, 11, 12}, questionIDs(data))

	rec, data = do(t, e, http.MethodGet, "/categories/99/questions", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestGetQuestionsByCategoryEmptyIsNotAnError(t *testing.T) {
	e := setupRouter(memory.NewStore(domain.Category{ID: 1, Type: "Science"}))

	rec, data := do(t, e, http.MethodGet, "/categories/1/questions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, data["questions"])
	assert.Equal(t, float64(0), data["total_questions"])

	rec, data = do(t, e, http.MethodGet, "/categories/1/questions?page=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, data["questions"])
}

func TestGetQuizQuestion(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/quizzes", `{"previous_questions":[10,12],"quiz_category":{"type":"Science","id":1}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	question := data["question"].(map[string]any)
	assert.Equal(t, float64(11), question["id"])

	rec, data = do(t, e, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"type":"click","id":0}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, data["question"])

	rec, data = do(t, e, http.MethodPost, "/quizzes", `{"quiz_category":{"type":"Art","id":"2"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), data["question"].(map[string]any)["category"])
}

func TestGetQuizQuestionExhausted(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/quizzes", `{"previous_questions":[10,11,12],"quiz_category":{"id":1}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["success"])
	assert.Contains(t, data, "question")
	assert.Nil(t, data["question"])
}

func TestGetQuizQuestionBadRequest(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/quizzes", `{"previous_questions":[]}`)
	assertError(t, rec, data, http.StatusBadRequest, "bad request")

	rec, data = do(t, e, http.MethodPost, "/quizzes", `{"quiz_category":{"id":-1}}`)
	assertError(t, rec, data, http.StatusBadRequest, "bad request")

	rec, data = do(t, e, http.MethodPost, "/quizzes", `{"quiz_category":{"id":"science"}}`)
	assertError(t, rec, data, http.StatusBadRequest, "bad request")
}

func TestCheckAnswer(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPost, "/questions/1/answer", `{"answer":"maya angelou"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, data["correct"])
	assert.Equal(t, "Maya Angelou", data["answer"])

	_, data = do(t, e, http.MethodPost, "/questions/1/answer", `{"answer":"Muhammad Ali"}`)
	assert.Equal(t, false, data["correct"])

	rec, data = do(t, e, http.MethodPost, "/questions/1/answer", `{"answer":" "}`)
	assertError(t, rec, data, http.StatusUnprocessableEntity, "unprocessable")

	rec, data = do(t, e, http.MethodPost, "/questions/1/answer", `{"answer":42}`)
	assertError(t, rec, data, http.StatusUnprocessableEntity, "unprocessable")

	rec, data = do(t, e, http.MethodPost, "/questions/999/answer", `{"answer":"x"}`)
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestMethodNotAllowed(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodPatch, "/categories", "")
	assertError(t, rec, data, http.StatusMethodNotAllowed, "method not allowed")
}

func TestUnknownRoute(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, data := do(t, e, http.MethodGet, "/nothing-here", "")
	assertError(t, rec, data, http.StatusNotFound, "resource not found")
}

func TestCORSHeaders(t *testing.T) {
	e := setupRouter(memory.NewSampleStore())

	rec, _ := do(t, e, http.MethodGet, "/categories", "")
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET,PUT,POST,DELETE,OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type,Authorization,true", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

// failingQuestions stands in for an unreachable database
type failingQuestions struct{ domain.QuestionRepository }

func (failingQuestions) Search(context.Context, string) ([]domain.Question, error) {
	return nil, errors.New("connection refused")
}

func (failingQuestions) Create(context.Context, *domain.Question) error {
	return errors.New("connection refused")
}

func TestStoreFailureIsInternalError(t *testing.T) {
	store := memory.NewSampleStore()
	e := server.New(server.Options{
		Trivia: service.NewTriviaService(store.Categories(), failingQuestions{}),
		Store:  store,
	})

	rec, data := do(t, e, http.MethodPost, "/questions", `{"searchTerm":"autobiography"}`)
	assertError(t, rec, data, http.StatusInternalServerError, "internal server error")

	rec, data = do(t, e, http.MethodPost, "/questions", `{"question":"q","answer":"a","difficulty":1,"category":1}`)
	assertError(t, rec, data, http.StatusInternalServerError, "internal server error")
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func TestRateLimited(t *testing.T) {
	store := memory.NewSampleStore()
	e := server.New(server.Options{
		Trivia:  service.NewTriviaService(store.Categories(), store.Questions()),
		Store:   store,
		Limiter: denyAll{},
	})

	rec, data := do(t, e, http.MethodGet, "/categories", "")
	assertError(t, rec, data, http.StatusTooManyRequests, "too many requests")
}
