package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	actorService service.ActorService,
	userService service.UserService,
	gymService service.GymService,
	trainerService service.TrainerService,
	studentService service.StudentService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	reportService service.ReportService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	gymHandler := NewGymHandler(gymService)
	trainerHandler := NewTrainerHandler(trainerService)
	studentHandler := NewStudentHandler(studentService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	reportHandler := NewReportHandler(reportService)

	authMiddleware := AuthMiddleware(jwtSecret)
	actorMiddleware := ActorMiddleware(actorService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware, actorMiddleware)
	{
		protected.GET("/me", userHandler.Me)

		// --- User Management (system admin) ---
		userGroup := protected.Group("/users")
		userGroup.Use(RoleMiddleware(domain.RoleSystemAdmin))
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.GET("/:id", userHandler.GetUser)
			userGroup.PATCH("/:id", userHandler.UpdateUser)
			userGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		// --- Gyms ---
		gymGroup := protected.Group("/gyms")
		{
			gymGroup.POST("", RoleMiddleware(domain.RoleSystemAdmin), gymHandler.CreateGym)
			gymGroup.GET("", gymHandler.ListGyms)
			gymGroup.GET("/:id", gymHandler.GetGym)
			gymGroup.PUT("/:id", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin), gymHandler.UpdateGym)
			gymGroup.DELETE("/:id", RoleMiddleware(domain.RoleSystemAdmin), gymHandler.DeleteGym)
		}

		// --- Trainers ---
		trainerGroup := protected.Group("/trainers")
		{
			trainerGroup.GET("", trainerHandler.ListTrainers)
			trainerGroup.GET("/:id", trainerHandler.GetTrainer)
			trainerGroup.PUT("/:id", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer), trainerHandler.UpdateTrainer)
		}

		// --- Students ---
		studentGroup := protected.Group("/students")
		{
			studentGroup.GET("", studentHandler.ListStudents)
			studentGroup.GET("/:id", studentHandler.GetStudent)
			studentGroup.PUT("/:id", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer), studentHandler.UpdateStudent)
		}

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/categories", exerciseHandler.GetCategories)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:id/images", exerciseHandler.GetImageURLs)
			exerciseGroup.POST("/import", RoleMiddleware(domain.RoleSystemAdmin), exerciseHandler.ImportExercises)
			exerciseGroup.POST("/:id/images", RoleMiddleware(domain.RoleSystemAdmin), exerciseHandler.RequestImageUpload)
		}

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer), workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer), workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", RoleMiddleware(domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer), workoutHandler.DeleteWorkout)
		}

		// --- Dashboards & Reports ---
		protected.GET("/dashboard", reportHandler.GetDashboard)
		protected.GET("/reports", reportHandler.GetReport)
	}
}
