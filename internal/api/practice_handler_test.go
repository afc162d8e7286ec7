package api

import (
	"bytes"
	"context"
	"encoding/json"
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
)

func routePracticeRequest(h *PracticeHandler, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/practice-questions", h.GetPracticeQuestions)
	router.Post("/user-answers", h.RecordAnswer)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPracticeHandler_GetPracticeQuestions(t *testing.T) {
	t.Parallel()

	questionID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	answerID := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	t.Run("returns_questions_with_answers", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(
			&MockPracticeService{
				SelectPracticeQuestionsFn: func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Question, error) {
					assert.Equal(t, fixedUserID, userID)
					assert.Equal(t, 3, limit)
					return []*domain.Question{
						{ID: questionID, TaskID: fixedTaskID, Content: "What is the capital of France?"},
					}, nil
				},
			},
			&MockAnswerStore{
				FindByQuestionIDFn: func(ctx context.Context, qID uuid.UUID) ([]*domain.Answer, error) {
					assert.Equal(t, questionID, qID)
					return []*domain.Answer{
						{ID: answerID, QuestionID: questionID, Content: "Paris", IsCorrect: true},
						{ID: uuid.New(), QuestionID: questionID, Content: "Lyon"},
					}, nil
				},
			},
		)

		req := httptest.NewRequest(
			http.MethodGet,
			"/practice-questions?user_id="+fixedUserID.String()+"&limit=3",
			nil,
		)
		rr := routePracticeRequest(handler, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp []PracticeQuestionResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, questionID.String(), resp[0].ID)
		require.Len(t, resp[0].Answers, 2)
		assert.Equal(t, "Paris", resp[0].Answers[0].Content)

		// Correctness must not leak into the session payload.
		assert.NotContains(t, rr.Body.String(), "is_correct")
	})

	t.Run("empty_session", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(&MockPracticeService{}, &MockAnswerStore{})

		req := httptest.NewRequest(
			http.MethodGet,
			"/practice-questions?user_id="+fixedUserID.String(),
			nil,
		)
		rr := routePracticeRequest(handler, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("missing_user_id", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(&MockPracticeService{}, &MockAnswerStore{})

		req := httptest.NewRequest(http.MethodGet, "/practice-questions", nil)
		rr := routePracticeRequest(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPracticeHandler_RecordAnswer(t *testing.T) {
	t.Parallel()

	questionID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	answerID := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	encode := func(t *testing.T, v interface{}) *bytes.Buffer {
		t.Helper()
		var body bytes.Buffer
		require.NoError(t, json.NewEncoder(&body).Encode(v))
		return &body
	}

	t.Run("correct_answer", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(
			&MockPracticeService{
				RecordAnswerFn: func(ctx context.Context, userID, qID, aID uuid.UUID) (*domain.UserAnswer, error) {
					assert.Equal(t, fixedUserID, userID)
					assert.Equal(t, questionID, qID)
					assert.Equal(t, answerID, aID)
					return &domain.UserAnswer{
						ID:         uuid.New(),
						UserID:     userID,
						QuestionID: qID,
						AnswerID:   aID,
						IsCorrect:  true,
						CreatedAt:  time.Now().UTC(),
					}, nil
				},
			},
			&MockAnswerStore{},
		)

		body := encode(t, RecordAnswerRequest{
			UserID:     fixedUserID,
			QuestionID: questionID,
			AnswerID:   answerID,
		})
		req := httptest.NewRequest(http.MethodPost, "/user-answers", body)
		rr := routePracticeRequest(handler, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp UserAnswerResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.True(t, resp.IsCorrect)
		assert.Equal(t, questionID.String(), resp.QuestionID)
	})

	t.Run("answer_from_other_question", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(
			&MockPracticeService{
				RecordAnswerFn: func(ctx context.Context, userID, qID, aID uuid.UUID) (*domain.UserAnswer, error) {
					return nil, service.ErrAnswerMismatch
				},
			},
			&MockAnswerStore{},
		)

		body := encode(t, RecordAnswerRequest{
			UserID:     fixedUserID,
			QuestionID: questionID,
			AnswerID:   answerID,
		})
		req := httptest.NewRequest(http.MethodPost, "/user-answers", body)
		rr := routePracticeRequest(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown_question", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(
			&MockPracticeService{
				RecordAnswerFn: func(ctx context.Context, userID, qID, aID uuid.UUID) (*domain.UserAnswer, error) {
					return nil, service.ErrQuestionNotFound
				},
			},
			&MockAnswerStore{},
		)

		body := encode(t, RecordAnswerRequest{
			UserID:     fixedUserID,
			QuestionID: questionID,
			AnswerID:   answerID,
		})
		req := httptest.NewRequest(http.MethodPost, "/user-answers", body)
		rr := routePracticeRequest(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing_fields", func(t *testing.T) {
		t.Parallel()

		handler := NewPracticeHandler(&MockPracticeService{}, &MockAnswerStore{})

		body := encode(t, RecordAnswerRequest{UserID: fixedUserID})
		req := httptest.NewRequest(http.MethodPost, "/user-answers", body)
		rr := routePracticeRequest(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
