package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/api/shared"
	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/service"
	"github.com/quizgen/quizgen-api/internal/store"
)

// CreateQuizTaskRequest represents the request body for creating a new quiz
// generation task.
type CreateQuizTaskRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Text   string    `json:"text"    validate:"required,min=1"`
}

// QuizTaskResponse represents the response data for a quiz generation task.
type QuizTaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       *string    `json:"title"`
	Category    *string    `json:"category"`
	Status      string     `json:"status"`
	GeneratedAt *time.Time `json:"generated_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// QuizTaskListResponse is one page of quiz generation tasks.
type QuizTaskListResponse struct {
	Data []QuizTaskResponse `json:"data"`
	Meta store.PageMeta     `json:"meta"`
}

// QuizTaskHandler handles quiz generation task HTTP requests.
type QuizTaskHandler struct {
	taskService service.QuizTaskService
}

// NewQuizTaskHandler creates a new QuizTaskHandler.
func NewQuizTaskHandler(taskService service.QuizTaskService) *QuizTaskHandler {
	return &QuizTaskHandler{
		taskService: taskService,
	}
}

// CreateQuizTask handles POST /api/quiz-generation-tasks requests. Generation
// runs in the background, so the response is 202 Accepted with the task in
// its initial state; clients poll the task to observe the outcome.
func (h *QuizTaskHandler) CreateQuizTask(w http.ResponseWriter, r *http.Request) {
	var req CreateQuizTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateQuizTask(r.Context(), req.UserID, req.Text)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, quizTaskToResponse(task))
}

// GetQuizTask handles GET /api/quiz-generation-tasks/{id} requests.
func (h *QuizTaskHandler) GetQuizTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetQuizTask(r.Context(), taskID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, quizTaskToResponse(task))
}

// ListQuizTasks handles GET /api/quiz-generation-tasks requests. The user is
// identified by the user_id query parameter; page and limit control
// pagination.
func (h *QuizTaskHandler) ListQuizTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.taskService.ListQuizTasks(r.Context(), userID, store.Pagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	data := make([]QuizTaskResponse, 0, len(result.Data))
	for _, task := range result.Data {
		data = append(data, quizTaskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizTaskListResponse{
		Data: data,
		Meta: result.Meta,
	})
}

// DeleteQuizTask handles DELETE /api/quiz-generation-tasks/{id} requests.
func (h *QuizTaskHandler) DeleteQuizTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteQuizTask(r.Context(), taskID); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// quizTaskToResponse converts a domain.QuizGenerationTask to a
// QuizTaskResponse. The source text is deliberately omitted from list and
// detail responses.
func quizTaskToResponse(task *domain.QuizGenerationTask) QuizTaskResponse {
	return QuizTaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Category:    task.Category,
		Status:      string(task.Status),
		GeneratedAt: task.GeneratedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
