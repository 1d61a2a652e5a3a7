package app

import (
	"context"
	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	stopBackground context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	category    *repository.CategoryRepository
	course      *repository.CourseRepository
	module      *repository.ModuleRepository
	lesson      *repository.LessonRepository
	enrollment  *repository.EnrollmentRepository
	assessment  *repository.AssessmentRepository
	group       *repository.GroupRepository
	access      *repository.AccessRepository
	progress    *repository.ProgressRepository
	activity    *repository.ActivityRepository
	certificate *repository.CertificateRepository
	comment     *repository.CommentRepository
	session     *repository.SessionRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	course      *service.CourseService
	enrollment  *service.EnrollmentService
	assessment  *service.AssessmentService
	access      *service.AccessService
	group       *service.GroupService
	progress    *service.ProgressService
	certificate *service.CertificateService
	comment     *service.CommentService
	activity    *service.ActivityService
	session     *service.SessionService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	category    *controller.CategoryController
	course      *controller.CourseController
	enrollment  *controller.EnrollmentController
	assessment  *controller.AssessmentController
	access      *controller.AccessController
	group       *controller.GroupController
	progress    *controller.ProgressController
	certificate *controller.CertificateController
	comment     *controller.CommentController
	activity    *controller.ActivityController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		category:    repository.NewCategoryRepository(db),
		course:      repository.NewCourseRepository(db),
		module:      repository.NewModuleRepository(db),
		lesson:      repository.NewLessonRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		group:       repository.NewGroupRepository(db),
		access:      repository.NewAccessRepository(db),
		progress:    repository.NewProgressRepository(db),
		activity:    repository.NewActivityRepository(db),
		certificate: repository.NewCertificateRepository(db),
		comment:     repository.NewCommentRepository(db),
		session:     repository.NewSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.activity = service.NewActivityService(repos.activity)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.course = service.NewCourseService(repos.course, repos.module, repos.lesson, s.storage)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, s.activity)
	s.assessment = service.NewAssessmentService(repos.assessment, s.activity)
	s.access = service.NewAccessService(repos.access, repos.group, repos.course)
	s.group = service.NewGroupService(repos.group, repos.user, repos.course)
	s.certificate = service.NewCertificateService(repos.certificate, repos.course, repos.user)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.lesson, repos.course, s.certificate, s.activity)
	s.comment = service.NewCommentService(repos.comment, repos.lesson)
	s.session = service.NewSessionService(repos.session, rdb, time.Duration(cfg.Session.TTLHours)*time.Hour)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.activity),
		user:        controller.NewUserController(s.user),
		category:    controller.NewCategoryController(repos.category),
		course:      controller.NewCourseController(s.course, s.access, s.activity),
		enrollment:  controller.NewEnrollmentController(s.enrollment),
		assessment:  controller.NewAssessmentController(s.assessment),
		access:      controller.NewAccessController(s.access),
		group:       controller.NewGroupController(s.group),
		progress:    controller.NewProgressController(s.progress),
		certificate: controller.NewCertificateController(s.certificate),
		comment:     controller.NewCommentController(s.comment),
		activity:    controller.NewActivityController(s.activity),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) startBackgroundTasks(s *services) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBackground = cancel

	s.session.StartSweeper(ctx, time.Hour)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// redis is optional; without it the session cache is skipped
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, session caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

// ApplyConfig copies hot-reloadable settings onto the running config.
// Services read the shared config pointer, so JWT changes take effect on
// the next request. Connection settings still need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.CORS = cfg.CORS
	a.Config.RateLimit = cfg.RateLimit
	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopBackground != nil {
		a.stopBackground()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
