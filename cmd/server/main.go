package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"athlos/gym-app/internal/api"
	"athlos/gym-app/internal/config"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/service"
	"athlos/gym-app/internal/storage"
	"athlos/gym-app/pkg/logger"
)

func main() {
	// .env is optional, real deployments use environment variables.
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("APP_ENV") != "production"); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := zap.S()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalw("could not load config", "error", err)
	}

	db, err := gormrepo.ConnectDB(cfg.Database.DSN)
	if err != nil {
		log.Fatalw("could not connect to database", "error", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalw("could not migrate database schema", "error", err)
	}
	log.Info("database connection established")

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalw("could not initialize S3 storage", "error", err)
	}

	// --- Repositories ---
	userRepo := gormrepo.NewUserRepository(db)
	gymRepo := gormrepo.NewGymRepository(db)
	trainerRepo := gormrepo.NewTrainerRepository(db)
	studentRepo := gormrepo.NewStudentRepository(db)
	exerciseRepo := gormrepo.NewExerciseRepository(db)
	workoutRepo := gormrepo.NewWorkoutRepository(db)
	reportRepo := gormrepo.NewReportRepository(db)
	txManager := gormrepo.NewTxManager(db)

	// --- Services ---
	provisioner := service.NewProvisioner(trainerRepo, studentRepo)
	actorService := service.NewActorService(userRepo, trainerRepo, studentRepo)
	authService := service.NewAuthService(userRepo, provisioner, txManager, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, provisioner, txManager)
	gymService := service.NewGymService(gymRepo)
	trainerService := service.NewTrainerService(trainerRepo)
	studentService := service.NewStudentService(studentRepo, trainerRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage)
	workoutService := service.NewWorkoutService(workoutRepo, studentRepo, exerciseRepo, txManager)
	reportService := service.NewReportService(reportRepo, studentRepo, trainerRepo, gymRepo, workoutRepo)

	// --- HTTP ---
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		actorService,
		userService,
		gymService,
		trainerService,
		studentService,
		exerciseService,
		workoutService,
		reportService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("listen and serve error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}
	log.Info("server exiting")
}
