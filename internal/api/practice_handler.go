package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/api/shared"
	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/service"
	"github.com/quizgen/quizgen-api/internal/store"
)

// RecordAnswerRequest represents the request body for recording a user's
// answer to a practice question.
type RecordAnswerRequest struct {
	UserID     uuid.UUID `json:"user_id"     validate:"required"`
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	AnswerID   uuid.UUID `json:"answer_id"   validate:"required"`
}

// AnswerResponse represents one answer option of a practice question. Whether
// the option is correct is not exposed here; correctness is only revealed
// when an answer is recorded.
type AnswerResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// PracticeQuestionResponse represents one question in a practice session.
type PracticeQuestionResponse struct {
	ID      string           `json:"id"`
	TaskID  string           `json:"task_id"`
	Content string           `json:"content"`
	Answers []AnswerResponse `json:"answers"`
}

// UserAnswerResponse represents the outcome of a recorded answer.
type UserAnswerResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	AnswerID   string    `json:"answer_id"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// PracticeHandler handles practice session HTTP requests.
type PracticeHandler struct {
	practiceService service.PracticeService
	answerStore     store.AnswerStore
}

// NewPracticeHandler creates a new PracticeHandler. The answer store is used
// to attach answer options to selected questions.
func NewPracticeHandler(
	practiceService service.PracticeService,
	answerStore store.AnswerStore,
) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		answerStore:     answerStore,
	}
}

// GetPracticeQuestions handles GET /api/practice-questions requests. The
// user is identified by the user_id query parameter; limit bounds the
// session size.
func (h *PracticeHandler) GetPracticeQuestions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	limit := queryInt(r, "limit", 0)

	questions, err := h.practiceService.SelectPracticeQuestions(r.Context(), userID, limit)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	response := make([]PracticeQuestionResponse, 0, len(questions))
	for _, question := range questions {
		answers, err := h.answerStore.FindByQuestionID(r.Context(), question.ID)
		if err != nil {
			RespondWithServiceError(w, r, err)
			return
		}
		response = append(response, practiceQuestionToResponse(question, answers))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// RecordAnswer handles POST /api/user-answers requests.
func (h *PracticeHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userAnswer, err := h.practiceService.RecordAnswer(
		r.Context(),
		req.UserID,
		req.QuestionID,
		req.AnswerID,
	)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userAnswerToResponse(userAnswer))
}

func practiceQuestionToResponse(
	question *domain.Question,
	answers []*domain.Answer,
) PracticeQuestionResponse {
	answerDTOs := make([]AnswerResponse, 0, len(answers))
	for _, answer := range answers {
		answerDTOs = append(answerDTOs, AnswerResponse{
			ID:      answer.ID.String(),
			Content: answer.Content,
		})
	}
	return PracticeQuestionResponse{
		ID:      question.ID.String(),
		TaskID:  question.TaskID.String(),
		Content: question.Content,
		Answers: answerDTOs,
	}
}

func userAnswerToResponse(userAnswer *domain.UserAnswer) UserAnswerResponse {
	return UserAnswerResponse{
		ID:         userAnswer.ID.String(),
		UserID:     userAnswer.UserID.String(),
		QuestionID: userAnswer.QuestionID.String(),
		AnswerID:   userAnswer.AnswerID.String(),
		IsCorrect:  userAnswer.IsCorrect,
		CreatedAt:  userAnswer.CreatedAt,
	}
}
