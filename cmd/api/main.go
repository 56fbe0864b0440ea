package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartresult/backend/internal/config"
	"github.com/smartresult/backend/internal/database"
	"github.com/smartresult/backend/internal/handlers"
	"github.com/smartresult/backend/internal/logger"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"github.com/smartresult/backend/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title SmartResult Portal API
// @version 1.0
// @description Exam result management portal: grading, rankings, CSV reports and result publication
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if len(os.Args) > 1 {
		handleCommand(os.Args[1], cfg)
		return
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if cfg.Server.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "smartresult-api"})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "SmartResult Portal API", "status": "running"})
	})

	if cfg.Monitoring.PrometheusEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Services
	authService := services.NewAuthService(db, cfg, log)
	setupService := services.NewSetupService(db)
	notificationService := services.NewNotificationService(db, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, setupService)
	studentHandler := handlers.NewStudentHandler(db)
	subjectHandler := handlers.NewSubjectHandler(db)
	examHandler := handlers.NewExamHandler(db)
	resultHandler := handlers.NewResultHandler(db)
	rankingHandler := handlers.NewRankingHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	insightHandler := handlers.NewInsightHandler(db)
	verifyHandler := handlers.NewVerifyHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, notificationService)
	dashboardHandler := handlers.NewDashboardHandler(db)
	auditHandler := handlers.NewAuditHandler(db)

	// Public verification, no auth
	r.GET("/verify/:examId", verifyHandler.Verify)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/admin/register", authHandler.AdminRegister)
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/student/login", authHandler.StudentLogin)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(authService))
		protected.Use(middleware.ScopeMiddleware())
		{
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/students", studentHandler.List)
				admin.POST("/students", studentHandler.Create)
				admin.GET("/students/:id", studentHandler.Get)
				admin.PUT("/students/:id", studentHandler.Update)
				admin.DELETE("/students/:id", studentHandler.Delete)

				admin.GET("/subjects", subjectHandler.List)
				admin.POST("/subjects", subjectHandler.Create)
				admin.PUT("/subjects/:id", subjectHandler.Update)

				admin.GET("/exam-types", examHandler.ListTypes)
				admin.POST("/exam-types", examHandler.CreateType)
				admin.GET("/exams", examHandler.List)
				admin.POST("/exams", examHandler.Create)
				admin.POST("/exams/:id/publish", examHandler.Publish)

				admin.GET("/results", resultHandler.List)
				admin.POST("/results", resultHandler.CreateOrUpdate)
				admin.DELETE("/results/:id", resultHandler.Delete)

				admin.GET("/rankings", rankingHandler.List)

				admin.GET("/reports/students", reportHandler.StudentPerformance)
				admin.GET("/reports/subjects", reportHandler.SubjectWise)
				admin.GET("/reports/grades", reportHandler.GradeDistribution)

				admin.GET("/stats", dashboardHandler.Stats)

				admin.GET("/notifications", notificationHandler.List)
				admin.POST("/notifications", notificationHandler.Send)

				admin.GET("/audit/recent", auditHandler.Recent)
			}

			student := protected.Group("/my")
			student.Use(middleware.RequireStudent())
			{
				student.GET("/results", resultHandler.MyResults)
				student.GET("/feedback", insightHandler.MyFeedback)
				student.GET("/predictions", insightHandler.MyPredictions)
			}
		}
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func handleCommand(cmd string, cfg *config.Config) {
	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	switch cmd {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("migration completed")

	case "seed-admin":
		seedAdmin(db, cfg)

	default:
		log.Error().Str("command", cmd).Msg("unknown command")
	}
}

// seedAdmin creates a first admin account for local development
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	authService := services.NewAuthService(db, cfg, log)

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		log.Info().Msg("admin already exists")
		return
	}

	admin, err := authService.RegisterAdmin("admin@smartresult.local", "Admin@123", "Demo High School")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}
	if err := services.NewSetupService(db).ProvisionAdmin(admin.ID); err != nil {
		log.Fatal().Err(err).Msg("failed to provision defaults")
	}

	log.Info().Str("email", admin.Email).Msg("seeded admin (password Admin@123)")
}
