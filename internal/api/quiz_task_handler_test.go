package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/service"
	"github.com/quizgen/quizgen-api/internal/store"
)

var (
	fixedUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTaskID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fixedTime   = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
)

func fixedTask() *domain.QuizGenerationTask {
	return &domain.QuizGenerationTask{
		ID:        fixedTaskID,
		UserID:    fixedUserID,
		Text:      "Some study material",
		Status:    domain.TaskStatusInProgress,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
}

// routeRequest dispatches the request through a chi router so URL
// parameters resolve the same way they do in production.
func routeRequest(h *QuizTaskHandler, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/quiz-generation-tasks", h.CreateQuizTask)
	router.Get("/quiz-generation-tasks", h.ListQuizTasks)
	router.Get("/quiz-generation-tasks/{id}", h.GetQuizTask)
	router.Delete("/quiz-generation-tasks/{id}", h.DeleteQuizTask)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestQuizTaskHandler_CreateQuizTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockQuizTaskService)
		expectedStatus int
	}{
		{
			name: "successful_creation",
			requestBody: CreateQuizTaskRequest{
				UserID: fixedUserID,
				Text:   "Some study material",
			},
			setupMock: func(ms *MockQuizTaskService) {
				ms.CreateQuizTaskFn = func(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error) {
					return fixedTask(), nil
				}
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "missing_text",
			requestBody:    CreateQuizTaskRequest{UserID: fixedUserID},
			setupMock:      func(ms *MockQuizTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_body",
			requestBody:    "not json",
			setupMock:      func(ms *MockQuizTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_user",
			requestBody: CreateQuizTaskRequest{
				UserID: fixedUserID,
				Text:   "Some study material",
			},
			setupMock: func(ms *MockQuizTaskService) {
				ms.CreateQuizTaskFn = func(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error) {
					return nil, service.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "text_too_long",
			requestBody: CreateQuizTaskRequest{
				UserID: fixedUserID,
				Text:   "Some study material",
			},
			setupMock: func(ms *MockQuizTaskService) {
				ms.CreateQuizTaskFn = func(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error) {
					return nil, service.ErrTextTooLong
				}
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name: "service_failure",
			requestBody: CreateQuizTaskRequest{
				UserID: fixedUserID,
				Text:   "Some study material",
			},
			setupMock: func(ms *MockQuizTaskService) {
				ms.CreateQuizTaskFn = func(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error) {
					return nil, errors.New("database unavailable")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockService := &MockQuizTaskService{}
			tc.setupMock(mockService)
			handler := NewQuizTaskHandler(mockService)

			var body bytes.Buffer
			require.NoError(t, json.NewEncoder(&body).Encode(tc.requestBody))

			req := httptest.NewRequest(http.MethodPost, "/quiz-generation-tasks", &body)
			rr := routeRequest(handler, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusAccepted {
				var resp QuizTaskResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, fixedTaskID.String(), resp.ID)
				assert.Equal(t, fixedUserID.String(), resp.UserID)
				assert.Equal(t, string(domain.TaskStatusInProgress), resp.Status)
			}
		})
	}
}

func TestQuizTaskHandler_GetQuizTask(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{
			GetQuizTaskFn: func(ctx context.Context, taskID uuid.UUID) (*domain.QuizGenerationTask, error) {
				assert.Equal(t, fixedTaskID, taskID)
				return fixedTask(), nil
			},
		})

		req := httptest.NewRequest(
			http.MethodGet,
			"/quiz-generation-tasks/"+fixedTaskID.String(),
			nil,
		)
		rr := routeRequest(handler, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp QuizTaskResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, fixedTaskID.String(), resp.ID)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{
			GetQuizTaskFn: func(ctx context.Context, taskID uuid.UUID) (*domain.QuizGenerationTask, error) {
				return nil, service.ErrTaskNotFound
			},
		})

		req := httptest.NewRequest(
			http.MethodGet,
			"/quiz-generation-tasks/"+fixedTaskID.String(),
			nil,
		)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid_id", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/quiz-generation-tasks/not-a-uuid", nil)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestQuizTaskHandler_ListQuizTasks(t *testing.T) {
	t.Parallel()

	t.Run("returns_page", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{
			ListQuizTasksFn: func(ctx context.Context, userID uuid.UUID, page store.Pagination) (*store.TaskPage, error) {
				assert.Equal(t, fixedUserID, userID)
				assert.Equal(t, 2, page.Page)
				assert.Equal(t, 5, page.Limit)
				return &store.TaskPage{
					Data: []*domain.QuizGenerationTask{fixedTask()},
					Meta: store.PageMeta{Page: 2, Limit: 5, TotalItems: 6, TotalPages: 2},
				}, nil
			},
		})

		req := httptest.NewRequest(
			http.MethodGet,
			"/quiz-generation-tasks?user_id="+fixedUserID.String()+"&page=2&limit=5",
			nil,
		)
		rr := routeRequest(handler, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp QuizTaskListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, fixedTaskID.String(), resp.Data[0].ID)
		assert.Equal(t, 6, resp.Meta.TotalItems)
	})

	t.Run("defaults_pagination", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{
			ListQuizTasksFn: func(ctx context.Context, userID uuid.UUID, page store.Pagination) (*store.TaskPage, error) {
				assert.Equal(t, 1, page.Page)
				assert.Equal(t, 10, page.Limit)
				return &store.TaskPage{Data: []*domain.QuizGenerationTask{}}, nil
			},
		})

		req := httptest.NewRequest(
			http.MethodGet,
			"/quiz-generation-tasks?user_id="+fixedUserID.String(),
			nil,
		)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing_user_id", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/quiz-generation-tasks", nil)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestQuizTaskHandler_DeleteQuizTask(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		deleted := false
		handler := NewQuizTaskHandler(&MockQuizTaskService{
			DeleteQuizTaskFn: func(ctx context.Context, taskID uuid.UUID) error {
				deleted = true
				assert.Equal(t, fixedTaskID, taskID)
				return nil
			},
		})

		req := httptest.NewRequest(
			http.MethodDelete,
			"/quiz-generation-tasks/"+fixedTaskID.String(),
			nil,
		)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, deleted)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		handler := NewQuizTaskHandler(&MockQuizTaskService{
			DeleteQuizTaskFn: func(ctx context.Context, taskID uuid.UUID) error {
				return service.ErrTaskNotFound
			},
		})

		req := httptest.NewRequest(
			http.MethodDelete,
			"/quiz-generation-tasks/"+fixedTaskID.String(),
			nil,
		)
		rr := routeRequest(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
