package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quizgen/quizgen-api/internal/api"
	apiMiddleware "github.com/quizgen/quizgen-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.userStore)
	quizTaskHandler := api.NewQuizTaskHandler(app.quizTaskService)
	practiceHandler := api.NewPracticeHandler(app.practiceService, app.answerStore)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.CreateUser)

		r.Post("/quiz-generation-tasks", quizTaskHandler.CreateQuizTask)
		r.Get("/quiz-generation-tasks", quizTaskHandler.ListQuizTasks)
		r.Get("/quiz-generation-tasks/{id}", quizTaskHandler.GetQuizTask)
		r.Delete("/quiz-generation-tasks/{id}", quizTaskHandler.DeleteQuizTask)

		r.Get("/practice-questions", practiceHandler.GetPracticeQuestions)
		r.Post("/user-answers", practiceHandler.RecordAnswer)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
