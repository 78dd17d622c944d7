package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/audit"
	"github.com/barberking/booking-api/internal/config"
	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/handlers"
	infraRepo "github.com/barberking/booking-api/internal/infra/repository"
	"github.com/barberking/booking-api/internal/infra/session"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/notify"
	"github.com/barberking/booking-api/internal/outbox"
	"github.com/barberking/booking-api/internal/storage"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	notifier notify.Notifier,
	imageStore *storage.ImageStore,
	cfg *config.Config,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	outboxRepo := outbox.NewRepository(db)
	sessionStore := session.NewStore(rdb, cfg.SessionTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	publicLimiter := middleware.NewRateLimiter(rdb, 60, time.Minute, "rl:public")

	hours := domain.WorkingHours{
		Start: cfg.WorkingHoursStart,
		End:   cfg.WorkingHoursEnd,
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, hours)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		outboxRepo,
		auditDispatcher,
		cfg.TelegramAdminChat,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		outboxRepo,
		auditDispatcher,
	)

	archiveAppointmentsUC := ucAppointment.NewArchiveAppointments(
		appointmentRepo,
		auditDispatcher,
	)

	monthlyReportUC := ucAppointment.NewMonthlyReport(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, cfg)

	sessionHandler := handlers.NewSessionHandler(
		sessionStore,
		appointmentRepo,
		availabilityUC,
		createAppointmentUC,
		cfg,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createAppointmentUC,
		transitionAppointmentUC,
	)

	adminHandler := handlers.NewAdminHandler(
		db,
		archiveAppointmentsUC,
		monthlyReportUC,
		imageStore,
		cfg,
	)

	webhookHandler := handlers.NewTelegramWebhookHandler(
		transitionAppointmentUC,
		notifier,
		outboxRepo,
		cfg.TelegramAdminChat,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Middleware())
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)

			// Step-wise booking flow. Time selection reads the caller's
			// identity when a token is present to pre-fill contact data.
			sessions := publicAPI.Group("/booking/session")
			{
				sessions.POST("", sessionHandler.Start)
				sessions.GET("/:id", sessionHandler.Get)
				sessions.POST("/:id/service", sessionHandler.SelectService)
				sessions.POST("/:id/date", sessionHandler.SelectDate)
				sessions.POST("/:id/time", middleware.OptionalAuthMiddleware(cfg), sessionHandler.SelectTime)
				sessions.POST("/:id/back", sessionHandler.Back)
			}
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOK (chamado pelo Telegram)
		// ------------------------------
		api.POST("/telegram/webhook", webhookHandler.Handle)

		// Confirmation enforces sign-in itself so it can bounce anonymous
		// callers back to time selection instead of a blanket 401.
		api.POST("/booking/session/:id/confirm",
			middleware.OptionalAuthMiddleware(cfg), sessionHandler.Confirm)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/appointments", meHandler.ListMyAppointments)

			secured.POST("/booking/create", bookingHandler.Create)
			secured.POST("/appointments/update-status", bookingHandler.UpdateStatus)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware(db))
		{
			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.POST("/archive", adminHandler.Archive)
			admin.GET("/reports", adminHandler.Reports)

			admin.POST("/services", adminHandler.CreateService)
			admin.PATCH("/services/:id", adminHandler.UpdateService)
			admin.POST("/services/:id/image", adminHandler.UploadServiceImage)
		}
	}
}
