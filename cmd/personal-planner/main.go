package main

import (
	"context"
	"log"
	"net/http"

	"github.com/avasiliev/personal-planner-backend/internal/api"
	events_service "github.com/avasiliev/personal-planner-backend/internal/business/events"
	expenses_service "github.com/avasiliev/personal-planner-backend/internal/business/expenses"
	notes_service "github.com/avasiliev/personal-planner-backend/internal/business/notes"
	tasks_service "github.com/avasiliev/personal-planner-backend/internal/business/tasks"
	"github.com/avasiliev/personal-planner-backend/internal/config"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/database/events"
	"github.com/avasiliev/personal-planner-backend/internal/database/expenses"
	"github.com/avasiliev/personal-planner-backend/internal/database/notes"
	"github.com/avasiliev/personal-planner-backend/internal/database/tasks"
	"github.com/avasiliev/personal-planner-backend/internal/redis"
	"github.com/avasiliev/personal-planner-backend/internal/reminders"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	redisPool := redis.NewRedisPool(logger)
	settingsRepository := redis.NewSettingsRepository(redisPool, logger)
	notificationsRepository := redis.NewNotificationRepository(redisPool, logger)

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initialize db: %v", err)
	}
	eventsRepository := events.NewRepository()
	tasksRepository := tasks.NewRepository()
	expensesRepository := expenses.NewRepository()
	notesRepository := notes.NewRepository()

	eventsService := events_service.NewService(db, eventsRepository)
	tasksService := tasks_service.NewService(db, tasksRepository)
	expensesService := expenses_service.NewService(db, expensesRepository)
	notesService := notes_service.NewService(db, notesRepository)

	scanner := reminders.NewScanner(logger, eventsService, notificationsRepository)
	if err := scanner.Start(ctx); err != nil {
		log.Fatalf("unable to start reminder scanner: %v", err)
	}

	api := api.NewApi(
		logger,
		eventsService,
		tasksService,
		expensesService,
		notesService,
		settingsRepository,
		notificationsRepository,
	)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
