package app

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/auralis/auralis/internal/config"
	"github.com/auralis/auralis/internal/db"
	"github.com/auralis/auralis/internal/notify"
	"github.com/auralis/auralis/internal/redisdb"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Redis           *redis.Client
	KafkaWriter     *kafka.Writer
	Notifier        notify.Notifier
	AuthService     *service.AuthService
	UserService     *service.UserService
	ProfileService  *service.ProfileService
	GoalService     *service.GoalService
	WellnessService *service.WellnessService
	Reporter        *service.ProgressReporter
	Evaluator       *service.CompletionEvaluator
	Sweeper         *service.OverdueSweeper
}

// New connects to the database, applies migrations and wires the services.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return Build(cfg, database), nil
}

// Build wires the services on an already migrated database. Redis and Kafka
// are only used when configured.
func Build(cfg *config.Config, database *sqlx.DB) *App {
	a := &App{Cfg: cfg, DB: database}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	historyRepository := repository.NewGoalHistoryRepository(database)
	wellnessRepository := repository.NewWellnessRepository(database)

	// Notifications
	notifiers := notify.Fanout{
		notify.Log{},
		notify.NewEmailNotifier(
			cfg.ResendAPIKey,
			cfg.EmailFrom,
			cfg.AppURL,
			cfg.AppName,
			cfg.IsDevelopment(),
			userRepository,
			profileRepository,
		),
	}
	if len(cfg.KafkaBrokers) > 0 {
		a.KafkaWriter = notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaGoalTopic)
		notifiers = append(notifiers, notify.NewKafkaNotifier(a.KafkaWriter))
	}
	a.Notifier = notifiers

	// Cross-instance sweep lock
	var lock service.Locker
	if cfg.RedisAddr != "" {
		a.Redis = redisdb.NewClient(cfg)
		lock = redisdb.NewLock(a.Redis, redisdb.SweepLockKey, cfg.GoalSweepInterval)
	}

	// Services
	a.Evaluator = service.NewCompletionEvaluator(goalRepository, historyRepository, a.Notifier)
	a.Reporter = service.NewProgressReporter(goalRepository, userRepository, a.Evaluator)
	a.Sweeper = service.NewOverdueSweeper(goalRepository, a.Notifier, lock, cfg.GoalSweepInterval)
	a.GoalService = service.NewGoalService(
		goalRepository,
		historyRepository,
		userRepository,
		profileRepository,
		a.Evaluator,
		cfg.Location(),
		cfg.GoalHistoryMaxWeeks,
	)
	a.WellnessService = service.NewWellnessService(wellnessRepository, userRepository, a.Reporter)
	a.AuthService = service.NewAuthService(
		userRepository,
		profileRepository,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	a.UserService = service.NewUserService(userRepository, profileRepository, cfg.AdminEmails)
	a.ProfileService = service.NewProfileService(profileRepository)

	return a
}

func (a *App) Close() error {
	var errs []error
	if a.KafkaWriter != nil {
		errs = append(errs, a.KafkaWriter.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
