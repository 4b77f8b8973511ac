package routes

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/database"
	"github.com/farhanputra/event-management-backend/internal/ai"
	"github.com/farhanputra/event-management-backend/internal/auditlog"
	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/budget"
	"github.com/farhanputra/event-management-backend/internal/event"
	"github.com/farhanputra/event-management-backend/internal/notification"
	"github.com/farhanputra/event-management-backend/internal/reports"
	"github.com/farhanputra/event-management-backend/internal/task"
	"github.com/farhanputra/event-management-backend/internal/user"
	"github.com/farhanputra/event-management-backend/internal/venue"
	"github.com/farhanputra/event-management-backend/middleware"

	_ "github.com/farhanputra/event-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module and registers the full route tree. It returns the
// notification service so main can run the bus consumer alongside the server.
func Setup(r *gin.Engine, cfg *config.Config) notification.Service {
	if err := os.MkdirAll(config.UploadPath, 0755); err != nil {
		fmt.Printf("Warning: could not create uploads directory: %v\n", err)
	}
	r.Static("/uploads", config.UploadPath)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, authRepo, cfg)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, notifSvc)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Budgets ==========
	budgetRepo := budget.NewRepository(database.DB)
	budgetSvc := budget.NewService(budgetRepo, eventSvc)
	budgetHandler := budget.NewHandler(budgetSvc)

	// ========== Tasks ==========
	taskRepo := task.NewRepository(database.DB)
	taskSvc := task.NewService(taskRepo, eventSvc, notifSvc)
	taskHandler := task.NewHandler(taskSvc)

	// ========== Venues ==========
	venueRepo := venue.NewRepository(database.DB)
	venueSvc := venue.NewService(venueRepo)
	venueHandler := venue.NewHandler(venueSvc)

	// ========== Users ==========
	userRepo := user.NewRepository(database.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	// ========== AI Analysis ==========
	aiSvc := ai.NewService(ai.NewClient(cfg), eventSvc, cfg)
	aiHandler := ai.NewHandler(aiSvc)

	// ========== Reports ==========
	reportsSvc := reports.NewService(budgetSvc, eventSvc, reports.NewExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(0)) // default 120 req/min per IP
	api.Use(middleware.AuditMiddleware())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, auth.PrincipalLookup(authRepo)))
	protected.Use(auditlog.Trail(auditSvc))

	// Authenticated auth surface
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/me", authHandler.UpdateProfile)
	protected.POST("/auth/change-password", authHandler.ChangePassword)

	// Alias kept for clients that address the profile under /users
	protected.GET("/users/me", authHandler.Me)
	protected.PUT("/users/me", authHandler.UpdateProfile)

	// ========== Events (+ guests, vendors, staff) ==========
	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.Create)
		eventRoutes.GET("", eventHandler.List)
		eventRoutes.GET("/:id", eventHandler.Get)
		eventRoutes.PUT("/:id", eventHandler.Update)
		eventRoutes.DELETE("/:id", eventHandler.Delete)
		eventRoutes.POST("/:id/upload-cover", eventHandler.UploadCover)

		eventRoutes.GET("/:id/guests", eventHandler.ListGuests)
		eventRoutes.POST("/:id/guests", eventHandler.AddGuest)
		eventRoutes.GET("/:id/guests/export", reportsHandler.ExportGuestList)
		eventRoutes.PUT("/:id/guests/:guestId", eventHandler.UpdateGuest)
		eventRoutes.DELETE("/:id/guests/:guestId", eventHandler.DeleteGuest)
		eventRoutes.POST("/:id/guests/:guestId/check-in", eventHandler.CheckInGuest)

		eventRoutes.GET("/:id/vendors", eventHandler.ListVendors)
		eventRoutes.POST("/:id/vendors", eventHandler.AddVendor)
		eventRoutes.PUT("/:id/vendors/:vendorId", eventHandler.UpdateVendor)
		eventRoutes.DELETE("/:id/vendors/:vendorId", eventHandler.DeleteVendor)

		eventRoutes.GET("/:id/staff", eventHandler.ListStaff)
		eventRoutes.POST("/:id/staff", eventHandler.AddStaff)
		eventRoutes.PUT("/:id/staff/:staffId", eventHandler.UpdateStaff)
		eventRoutes.DELETE("/:id/staff/:staffId", eventHandler.DeleteStaff)
	}

	// ========== Budgets ==========
	budgetRoutes := protected.Group("/budgets")
	{
		budgetRoutes.POST("", budgetHandler.Create)
		budgetRoutes.GET("", budgetHandler.List)
		budgetRoutes.GET("/:id", budgetHandler.Get)
		budgetRoutes.PUT("/:id", budgetHandler.Update)
		budgetRoutes.GET("/:id/export", reportsHandler.ExportBudget)

		budgetRoutes.GET("/:id/items", budgetHandler.ListItems)
		budgetRoutes.POST("/:id/items", budgetHandler.CreateItem)
		budgetRoutes.PUT("/items/:itemId", budgetHandler.UpdateItem)
		budgetRoutes.DELETE("/items/:itemId", budgetHandler.DeleteItem)
		budgetRoutes.POST("/items/:itemId/expenses", budgetHandler.AddExpense)
	}

	// ========== Tasks ==========
	taskRoutes := protected.Group("/tasks")
	{
		taskRoutes.POST("", taskHandler.Create)
		taskRoutes.GET("", taskHandler.List)
		taskRoutes.GET("/:id", taskHandler.Get)
		taskRoutes.PUT("/:id", taskHandler.Update)
		taskRoutes.DELETE("/:id", taskHandler.Delete)
		taskRoutes.POST("/:id/assign", taskHandler.Assign)
		taskRoutes.POST("/:id/complete", taskHandler.Complete)
	}

	// ========== Venues ==========
	venueRoutes := protected.Group("/venues")
	{
		venueRoutes.GET("", venueHandler.List)
		venueRoutes.GET("/:id", venueHandler.Get)

		venueWrite := venueRoutes.Group("")
		venueWrite.Use(middleware.RBACMiddleware(auth.RoleAdmin, auth.RoleOrganizer))
		{
			venueWrite.POST("", venueHandler.Create)
			venueWrite.PUT("/:id", venueHandler.Update)
			venueWrite.DELETE("/:id", venueHandler.Delete)
		}
	}

	// ========== Users (admin/organizer) ==========
	userRoutes := protected.Group("/users")
	userRoutes.Use(middleware.RBACMiddleware(auth.RoleAdmin, auth.RoleOrganizer))
	{
		userRoutes.POST("", userHandler.Create)
		userRoutes.GET("", userHandler.List)
		userRoutes.GET("/:id", userHandler.Get)
		userRoutes.PUT("/:id", userHandler.Update)
		userRoutes.DELETE("/:id", middleware.RBACMiddleware(auth.RoleAdmin), userHandler.Delete)
	}

	// ========== Notifications ==========
	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.GET("", notifHandler.List)
		notifRoutes.GET("/unread-count", notifHandler.UnreadCount)
		notifRoutes.PATCH("/:id/read", notifHandler.MarkRead)
		notifRoutes.POST("/devices", notifHandler.RegisterDevice)
		notifRoutes.DELETE("/devices", notifHandler.RemoveDevice)
	}

	// ========== AI Analysis ==========
	aiRoutes := protected.Group("/ai")
	{
		aiRoutes.GET("/analyze-event/:id", aiHandler.AnalyzeEvent)
		aiRoutes.GET("/predict-attendance/:id", aiHandler.PredictAttendance)
		aiRoutes.GET("/recommendations/:id", aiHandler.Recommendations)
	}

	// ========== Audit Logs (admin only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(auth.RoleAdmin))
	{
		auditRoutes.GET("", auditHandler.List)
		auditRoutes.GET("/:id", auditHandler.Get)
	}

	return notifSvc
}
