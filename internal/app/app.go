package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/controller"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/pkg/database"
	"github.com/18d-shady/cbt-backend/pkg/logger"
	"github.com/18d-shady/cbt-backend/pkg/monitoring"
	"github.com/18d-shady/cbt-backend/pkg/security"
	"github.com/18d-shady/cbt-backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	school       *repository.SchoolRepository
	user         *repository.UserRepository
	course       *repository.CourseRepository
	exam         *repository.ExamRepository
	question     *repository.QuestionRepository
	registration *repository.RegistrationRepository
	session      *repository.SessionRepository
	answer       *repository.AnswerRepository
	score        *repository.ScoreRepository
}

type services struct {
	storage *service.StorageService
	auth    *service.AuthService
	exam    *service.ExamService
	session *service.SessionService
	answer  *service.AnswerService
	grading *service.GradingService
	catalog *service.CatalogService
}

type controllers struct {
	auth    *controller.AuthController
	exam    *controller.ExamController
	session *controller.SessionController
	answer  *controller.AnswerController
	catalog *controller.CatalogController
	grading *controller.GradingController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		school:       repository.NewSchoolRepository(db),
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		exam:         repository.NewExamRepository(db, rdb),
		question:     repository.NewQuestionRepository(db, rdb),
		registration: repository.NewRegistrationRepository(db),
		session:      repository.NewSessionRepository(db),
		answer:       repository.NewAnswerRepository(db),
		score:        repository.NewScoreRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, repos.registration, repos.exam, cfg)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.answer, repos.registration)
	s.session = service.NewSessionService(repos.exam, repos.session, repos.score, db, cfg)
	s.answer = service.NewAnswerService(repos.question, repos.answer)
	s.grading = service.NewGradingService(repos.exam, repos.answer, repos.score, repos.session, repos.user, db)
	s.catalog = service.NewCatalogService(repos.course, repos.exam, repos.question, repos.registration, repos.user, repos.school, storage)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		exam:    controller.NewExamController(s.exam),
		session: controller.NewSessionController(s.session),
		answer:  controller.NewAnswerController(s.answer),
		catalog: controller.NewCatalogController(s.catalog),
		grading: controller.NewGradingController(s.grading),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// The cache is optional: a nil client puts every read on MySQL.
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("cbt-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
