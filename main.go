package main

import (
	"log"

	"github.com/dinebook/reservation-app/config"
	"github.com/dinebook/reservation-app/middlewares"
	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/router"
	"github.com/dinebook/reservation-app/services"
	"github.com/dinebook/reservation-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := cfg.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	var notifier services.Notifier
	if cfg.MailEnabled() {
		notifier = services.NewMailNotifier(db, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
		utils.InfoLogger.Printf("Mail notifications enabled via %s", cfg.SMTPHost)
	} else {
		notifier = services.NewLogNotifier(db)
		utils.InfoLogger.Println("SMTP not configured, notifications are logged only")
	}

	tables := services.NewTableService(db)
	resolver := services.NewAvailabilityResolver(db)
	reservations := services.NewReservationService(db, tables, resolver, notifier, services.SystemClock{})
	shifts := services.NewShiftService(db)

	scheduler := services.NewReminderScheduler(reservations, cfg.ReminderInterval)
	scheduler.Start()
	defer scheduler.Stop()

	r := router.SetupRouter(db, reservations, tables, shifts)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.ShiftAssignment{},
		&models.ScheduleConfig{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
