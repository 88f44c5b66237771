package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kaan/eduflow/internal/app/controllers"
	"github.com/kaan/eduflow/internal/app/coursetree"
	appMigrations "github.com/kaan/eduflow/internal/app/migrations"
	appRepos "github.com/kaan/eduflow/internal/app/repositories"
	appRoutes "github.com/kaan/eduflow/internal/app/routes"
	appServices "github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/config"
	"github.com/kaan/eduflow/internal/db"
	appMiddleware "github.com/kaan/eduflow/internal/middleware"
	"github.com/kaan/eduflow/internal/pkg/cache"
	"github.com/kaan/eduflow/internal/pkg/certificates"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
	"github.com/kaan/eduflow/internal/pkg/logger"
	"github.com/kaan/eduflow/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	InstructorService      appServices.InstructorService
	CourseService          appServices.CourseService
	EnrollmentService      appServices.EnrollmentService
	ReviewService          appServices.ReviewService
	CartService            appServices.CartService
	NotificationService    appServices.NotificationService
	FAQService             appServices.FAQService
	AuthController         *appControllers.AuthController
	InstructorController   *appControllers.InstructorController
	CourseController       *appControllers.CourseController
	EnrollmentController   *appControllers.EnrollmentController
	ReviewController       *appControllers.ReviewController
	CartController         *appControllers.CartController
	NotificationController *appControllers.NotificationController
	FAQController          *appControllers.FAQController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
	Cache                  *cache.Cache
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize file storage. The base URL must match the static file
	// serving endpoint.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + cfg.Storage.BaseURL
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Cache, err = cache.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.Enabled)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	certGen, err := certificates.NewGenerator(cfg.Storage.Path, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize certificate generator")
		return nil, fmt.Errorf("failed to initialize certificate generator: %w", err)
	}

	bounds := coursetree.Bounds{
		Chapters:  cfg.Courses.MaxChapters,
		Lessons:   cfg.Courses.MaxLessonsPerChapter,
		Videos:    cfg.Courses.MaxVideosPerLesson,
		Documents: cfg.Courses.MaxDocumentsPerLesson,
	}

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User,
		deps.Repos.Session,
		cfg.SessionTTL(),
	)
	deps.InstructorService = appServices.NewInstructorService(
		deps.Repos.Instructor,
		deps.Repos.Session,
		deps.FileStorage,
		cfg.SessionTTL(),
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.Course,
		deps.Repos.CourseTree,
		deps.Repos.Instructor,
		deps.Repos.Review,
		deps.FileStorage,
		deps.Cache,
		bounds,
		cfg.MaxUploadBytes(),
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.Enrollment,
		deps.Repos.Course,
		deps.Repos.User,
		deps.Repos.Cart,
		certGen,
	)
	deps.ReviewService = appServices.NewReviewService(
		deps.Repos.Review,
		deps.Repos.Enrollment,
		deps.Cache,
	)
	deps.CartService = appServices.NewCartService(
		deps.Repos.Cart,
		deps.Repos.Course,
		deps.Repos.Enrollment,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.Notification)
	deps.FAQService = appServices.NewFAQService(deps.Repos.FAQ)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.EnrollmentService)
	deps.InstructorController = appControllers.NewInstructorController(deps.InstructorService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, cfg.MaxUploadBytes())
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, deps.CourseService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService)
	deps.CartController = appControllers.NewCartController(deps.CartService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.FAQController = appControllers.NewFAQController(deps.FAQService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.InstructorController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.ReviewController,
		deps.CartController,
		deps.NotificationController,
		deps.FAQController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
