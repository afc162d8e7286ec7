package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quizgen/quizgen-api/internal/config"
	"github.com/quizgen/quizgen-api/internal/events"
	"github.com/quizgen/quizgen-api/internal/generation"
	"github.com/quizgen/quizgen-api/internal/platform/gemini"
	"github.com/quizgen/quizgen-api/internal/platform/postgres"
	"github.com/quizgen/quizgen-api/internal/service"
	"github.com/quizgen/quizgen-api/internal/store"
	"github.com/quizgen/quizgen-api/internal/task"
)

// application holds the shared application dependencies so startup wiring and
// shutdown cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore       store.UserStore
	taskStore       store.TaskStore
	questionStore   store.QuestionStore
	answerStore     store.AnswerStore
	userAnswerStore store.UserAnswerStore

	quizTaskService service.QuizTaskService
	practiceService service.PracticeService

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication wires all application components together. The database
// connection and logger must already be established; everything downstream
// is built here in dependency order.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.questionStore = postgres.NewPostgresQuestionStore(db, logger)
	app.answerStore = postgres.NewPostgresAnswerStore(db, logger)
	app.userAnswerStore = postgres.NewPostgresUserAnswerStore(db, logger)

	generator, err := gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "gemini_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	builder, err := generation.NewQuestionBuilder(generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create question builder: %w", err)
	}

	quizGenerator, err := generation.NewQuizGenerator(builder)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz generator: %w", err)
	}

	quizStorage, err := service.NewQuizStorage(
		app.taskStore,
		app.questionStore,
		app.answerStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz storage: %w", err)
	}

	processor, err := service.NewQuizProcessor(quizGenerator, quizStorage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz processor: %w", err)
	}

	factory, err := task.NewQuizGenerationTaskFactory(processor, app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	app.taskRunner, err = task.NewTaskRunner(app.taskStore, factory, task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task runner: %w", err)
	}

	// Starting the runner recovers tasks left in progress by a previous run
	// before accepting new submissions.
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(
		task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger),
	)

	app.quizTaskService, err = service.NewQuizTaskService(
		db,
		app.taskStore,
		app.questionStore,
		app.userStore,
		app.eventEmitter,
		cfg.Quiz.MaxTextLength,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz task service: %w", err)
	}

	app.practiceService, err = service.NewPracticeService(
		app.questionStore,
		app.answerStore,
		app.userAnswerStore,
		service.NewQuestionSelector(),
		cfg.Quiz.DefaultPracticeSize,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The task
// runner is stopped first so in-flight generation drains before the
// database connection closes.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
