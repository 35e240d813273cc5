package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/queue"
	"petmatch-backend/internal/recommendations"
	"petmatch-backend/internal/recommendations/cache"
	"petmatch-backend/internal/recommendations/engine"
	"petmatch-backend/internal/services/health"
	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/server"
	"petmatch-backend/internal/shared/storage/db"
	"petmatch-backend/internal/shared/telemetry"
	"petmatch-backend/internal/users"
	"petmatch-backend/internal/views"
	"petmatch-backend/internal/workerproc"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config       config.Config
	EngineConfig engine.Config
	Router       *gin.Engine
	DB           *sql.DB
	Redis        *cache.RedisCache
	Queue        queue.Client

	AnimalsRepo animals.Repo
	UsersRepo   users.Repo
	ViewsRepo   views.Repo

	Engine                 *engine.Engine
	AnimalsService         *animals.Service
	UsersService           *users.Service
	ViewsService           *views.Service
	RecommendationsService *recommendations.Service
	HealthService          *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.Configure(cfg.LogLevel)
	ctx := context.Background()

	engineCfg, err := config.LoadEngine(cfg.EngineConfig)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisCache, err := buildRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		EngineConfig: engineCfg,
		DB:           sqlDB,
		Redis:        redisCache,
	}

	buildServices(app)

	queueClient, err := buildQueue(ctx, app)
	if err != nil {
		return nil, err
	}
	app.Queue = queueClient

	app.UsersService.OnPreferencesChanged = app.enqueueRefresh
	app.ViewsService.OnRecorded = func(ctx context.Context, view views.View) {
		app.enqueueRefresh(ctx, view.UserID)
	}

	app.HealthService = health.NewService(healthChecks(app))
	app.Router = server.NewRouter(server.RouterDeps{
		Config: app.Config,
		Health: app.HealthService,
		Handlers: []server.RouteRegistrar{
			animals.NewHandler(app.AnimalsService),
			users.NewHandler(app.UsersService),
			views.NewHandler(app.ViewsService),
			recommendations.NewHandler(app.RecommendationsService),
		},
	})

	return app, nil
}

// Close releases the Redis connection. The database pool is left to process exit
// because Lambda runtimes share it across invocations.
func (a *App) Close() error {
	if a == nil || a.Redis == nil {
		return nil
	}
	return a.Redis.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*cache.RedisCache, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil, nil
	}
	rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RecsCacheTTL)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis unavailable; using in-memory cache: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return rc, nil
}

func buildQueue(ctx context.Context, app *App) (queue.Client, error) {
	if strings.TrimSpace(app.Config.SQSQueueURL) == "" {
		// Without SQS the refresh runs in-process, detached from request cancellation.
		return queue.NewMemoryClient(func(ctx context.Context, msg queue.Message) error {
			return workerproc.Process(context.WithoutCancel(ctx), app.RecommendationsService, msg)
		}), nil
	}
	return queue.NewSQSClient(ctx, app.Config.SQSQueueURL, app.Config.AWSRegion)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var (
		animalRepo animals.Repo
		userRepo   users.Repo
		viewRepo   views.Repo
		scores     recommendations.ScoreStore
		listCache  recommendations.ListCache
	)

	if app.DB != nil {
		animalRepo = &animals.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
		viewRepo = &views.PGRepo{DB: app.DB}
		scores = &cache.PGScoreStore{DB: app.DB}
	} else {
		animalRepo = animals.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
		viewRepo = views.NewMemoryRepo()
		scores = cache.NewMemoryScoreStore()
	}
	if app.Redis != nil {
		listCache = app.Redis
	} else {
		listCache = cache.NewMemory(app.Config.RecsCacheTTL)
	}

	animalSvc := animals.NewService(animalRepo)
	userSvc := users.NewService(userRepo)
	viewSvc := &views.Service{
		Repo:    viewRepo,
		Users:   userSvc,
		Animals: animalSvc,
	}

	eng := engine.New(app.EngineConfig,
		recommendations.UserLookup{Users: userSvc},
		recommendations.AnimalLookup{Animals: animalRepo, Views: viewRepo},
		recommendations.ViewHistory{Views: viewRepo},
		engine.WithOutcomeObserver(func(o engine.Outcome) {
			metrics.IncScorerOutcome(o.Scorer, string(o.Status))
		}),
	)

	app.AnimalsRepo = animalRepo
	app.UsersRepo = userRepo
	app.ViewsRepo = viewRepo
	app.Engine = eng
	app.AnimalsService = animalSvc
	app.UsersService = userSvc
	app.ViewsService = viewSvc
	app.RecommendationsService = &recommendations.Service{
		Engine:  eng,
		Animals: animalSvc,
		Cache:   listCache,
		Scores:  scores,
	}
}

// enqueueRefresh drops the user's cached lists and asks a worker to recompute them.
func (a *App) enqueueRefresh(ctx context.Context, userID string) {
	a.RecommendationsService.Invalidate(ctx, userID)
	if a.Queue == nil {
		return
	}
	requestID := telemetry.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	msg := queue.NewRefreshMessage(userID, requestID, time.Now())
	if err := a.Queue.Send(ctx, msg); err != nil {
		telemetry.Warn("recommendations.refresh.enqueue_failed", map[string]any{
			"user_id":    userID,
			"request_id": requestID,
			"error":      err.Error(),
		})
		return
	}
	telemetry.Debug("recommendations.refresh.enqueued", map[string]any{"user_id": userID, "request_id": requestID})
}

func healthChecks(app *App) map[string]health.Check {
	checks := map[string]health.Check{}
	if app.DB != nil {
		checks["database"] = app.DB.PingContext
	}
	if app.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return app.Redis.Client.Ping(ctx).Err()
		}
	}
	return checks
}

