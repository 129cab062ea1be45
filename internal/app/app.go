package app

import (
	"context"
	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/middleware"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/configwatcher"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	verifier        *util.TokenVerifier
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	enrollment   *repository.EnrollmentRepository
	assessment   *repository.AssessmentRepository
	analytics    *repository.AnalyticsRepository
	notification *repository.NotificationRepository
	review       *repository.ReviewRepository
	ownership    *repository.OwnershipRepository
}

type services struct {
	user         *service.UserService
	access       *service.AccessService
	storage      *service.StorageService
	notification *service.NotificationService
	catalog      *service.CatalogService
	enrollment   *service.EnrollmentService
	assessment   *service.AssessmentService
	analytics    *service.AnalyticsService
}

type controllers struct {
	user         *controller.UserController
	course       *controller.CourseController
	learning     *controller.LearningController
	instructor   *controller.InstructorController
	analytics    *controller.AnalyticsController
	notification *controller.NotificationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		analytics:    repository.NewAnalyticsRepository(db),
		notification: repository.NewNotificationRepository(db),
		review:       repository.NewReviewRepository(db),
		ownership:    repository.NewOwnershipRepository(db),
	}
}

func gradePolicy(cfg *config.Config) service.GradePolicy {
	return service.GradePolicy{Min: cfg.Grading.MinGrade, Max: cfg.Grading.MaxGrade}
}

func analyticsOptions(cfg *config.Config) service.AnalyticsOptions {
	return service.AnalyticsOptions{
		EnrollmentMonths:    cfg.Analytics.EnrollmentMonths,
		MatchEnrollmentYear: cfg.Analytics.MatchEnrollmentYear,
	}
}

func initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.user = service.NewUserService(repos.user)
	s.access = service.NewAccessService(repos.ownership)
	s.storage = service.NewStorageService(cfg)
	s.notification = service.NewNotificationService(repos.notification, rdb)
	s.catalog = service.NewCatalogService(repos.course, repos.enrollment, repos.review, s.access)
	s.enrollment = service.NewEnrollmentService(
		repos.course,
		repos.enrollment,
		repos.analytics,
		repos.assessment,
		repos.ownership,
		s.notification,
		db,
	)
	s.assessment = service.NewAssessmentService(repos.assessment, s.access, s.storage, gradePolicy(cfg))
	s.analytics = service.NewAnalyticsService(
		repos.course,
		repos.enrollment,
		repos.analytics,
		repos.assessment,
		repos.review,
		s.access,
		db,
		analyticsOptions(cfg),
	)

	return s
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		user:         controller.NewUserController(s.user),
		course:       controller.NewCourseController(s.catalog, s.enrollment),
		learning:     controller.NewLearningController(s.enrollment, s.assessment),
		instructor:   controller.NewInstructorController(s.catalog, s.assessment),
		analytics:    controller.NewAnalyticsController(s.analytics),
		notification: controller.NewNotificationController(s.notification),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
		router.Use(a.limiter.Middleware())
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newApp 组装依赖与路由，不负责数据库连接的建立
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{Config: cfg, DB: db, Redis: rdb, verifier: util.NewTokenVerifier(cfg.JWT)}

	repos := initRepositories(db)
	app.services = initServices(repos, cfg, db, rdb)
	ctrls := initControllers(app.services, db, rdb)

	app.RegisterConfigCallback(func(c *config.Config) {
		app.services.assessment.SetGradePolicy(gradePolicy(c))
		app.services.analytics.SetOptions(analyticsOptions(c))
	})

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.Router = router
	return app
}

func NewApp(cfg *config.Config, configDir string) *App {
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需要显式 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := newApp(cfg, db, rdb)
	app.ConfigDir = configDir

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	configFile := filepath.Join(a.ConfigDir, "config.yaml")
	if err := configwatcher.WatchConfig(ctx, configFile, a.applyConfig); err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
	if a.limiter != nil {
		go a.limiter.Cleanup(ctx)
	}

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

	// 等待中断信号优雅关闭（5 秒超时）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
