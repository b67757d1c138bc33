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

	appControllers "github.com/kesher-org/kesher-backend/internal/app/controllers"
	appMigrations "github.com/kesher-org/kesher-backend/internal/app/migrations"
	appRepos "github.com/kesher-org/kesher-backend/internal/app/repositories"
	appRoutes "github.com/kesher-org/kesher-backend/internal/app/routes"
	appServices "github.com/kesher-org/kesher-backend/internal/app/services"
	"github.com/kesher-org/kesher-backend/internal/config"
	"github.com/kesher-org/kesher-backend/internal/db"
	appMiddleware "github.com/kesher-org/kesher-backend/internal/middleware"
	pkgAuth "github.com/kesher-org/kesher-backend/internal/pkg/auth"
	"github.com/kesher-org/kesher-backend/internal/pkg/email"
	"github.com/kesher-org/kesher-backend/internal/pkg/geocode"
	"github.com/kesher-org/kesher-backend/internal/pkg/helpers"
	"github.com/kesher-org/kesher-backend/internal/pkg/logger"
	"github.com/kesher-org/kesher-backend/internal/pkg/matching"
	"github.com/kesher-org/kesher-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	VolunteerService    *appServices.VolunteerService
	MatchingService     *appServices.MatchingService
	ApprovalService     *appServices.ApprovalService
	NotificationService *appServices.NotificationService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	VolunteerController *appControllers.VolunteerController
	MatchController     *appControllers.MatchController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Geocoder            geocode.Geocoder
	MailSender          *email.Sender
	Logger              zerolog.Logger
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

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
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

	// Create the initial operator account (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Geocoder = geocode.NewStaticGeocoder()

	deps.MailSender = email.NewSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.AdminRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Geocoder, lgr)
	deps.VolunteerService = appServices.NewVolunteerService(deps.Repos.VolunteerRepository, deps.Geocoder, lgr)

	matchingDefaults := matching.Options{
		MinScore:      cfg.Matching.MinScore,
		MaxDistanceKm: cfg.Matching.MaxDistanceKm,
		ResultLimit:   cfg.Matching.ResultLimit,
		Scorer:        matching.ScorerConfig{NearbyThresholdKm: cfg.Matching.NearbyThresholdKm},
	}
	deps.MatchingService = appServices.NewMatchingService(
		deps.Repos.StudentRepository,
		deps.Repos.VolunteerRepository,
		deps.Repos.MatchRepository,
		matchingDefaults,
		lgr,
	)

	deps.NotificationService = appServices.NewNotificationService(
		deps.MailSender,
		deps.Repos.NotificationLogRepository,
		lgr,
	)
	deps.ApprovalService = appServices.NewApprovalService(
		deps.Repos.MatchRepository,
		deps.NotificationService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.VolunteerController = appControllers.NewVolunteerController(deps.VolunteerService)
	deps.MatchController = appControllers.NewMatchController(
		deps.MatchingService,
		deps.ApprovalService,
		deps.Repos.MatchRepository,
		deps.Repos.NotificationLogRepository,
	)

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
		deps.StudentController,
		deps.VolunteerController,
		deps.MatchController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
