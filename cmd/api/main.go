package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/barberking/booking-api/internal/audit"
	"github.com/barberking/booking-api/internal/config"
	dbpkg "github.com/barberking/booking-api/internal/db"
	infraRepo "github.com/barberking/booking-api/internal/infra/repository"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/notify"
	"github.com/barberking/booking-api/internal/outbox"
	"github.com/barberking/booking-api/internal/routes"
	"github.com/barberking/booking-api/internal/scheduler"
	"github.com/barberking/booking-api/internal/storage"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)

	ctx := context.Background()

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.TelegramBotToken != "" {
		notifier = notify.NewTelegramClient(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken)
	}

	var imageStore *storage.ImageStore
	if cfg.S3Bucket != "" {
		imageStore, err = storage.NewImageStore(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatalf("failed to init image storage: %v", err)
		}
	}

	// Outbox delivery runs detached from request handling.
	outboxDispatcher := outbox.NewDispatcher(outbox.NewRepository(db), notifier)
	outboxDispatcher.Start(ctx)

	// Nightly archive of settled appointments.
	archiveUC := ucAppointment.NewArchiveAppointments(
		infraRepo.NewAppointmentGormRepository(db),
		audit.NewDispatcher(audit.New(db)),
	)
	sched := scheduler.New(cfg.ShopTimezone, archiveUC)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, notifier, imageStore, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
