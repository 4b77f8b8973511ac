package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/database"
	"github.com/farhanputra/event-management-backend/internal/auditlog"
	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/budget"
	"github.com/farhanputra/event-management-backend/internal/event"
	"github.com/farhanputra/event-management-backend/internal/notification"
	"github.com/farhanputra/event-management-backend/internal/task"
	"github.com/farhanputra/event-management-backend/internal/venue"
	"github.com/farhanputra/event-management-backend/routes"
	"github.com/farhanputra/event-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	utils.InitRedis(cfg)
	utils.InitKafka(cfg)
	defer utils.CloseKafka()

	if err := utils.InitFirebase(cfg); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without push notifications")
	}

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&venue.Venue{},
		&event.Event{},
		&event.EventGuest{},
		&event.EventVendor{},
		&event.EventStaff{},
		&budget.Budget{},
		&budget.BudgetItem{},
		&budget.Expense{},
		&task.Task{},
		&task.TaskAssignment{},
		&auditlog.AuditLog{},
		&notification.Notification{},
		&notification.DeviceToken{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	if err := auth.SeedAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin user: %v", err))
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	notifSvc := routes.Setup(router, cfg)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go notification.StartConsumer(consumerCtx, cfg, notifSvc)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
