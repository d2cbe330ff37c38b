package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/cache"
	"github.com/tanyourpeach/tan-scheduler/internal/config"
	"github.com/tanyourpeach/tan-scheduler/internal/handlers"
	infraRepo "github.com/tanyourpeach/tan-scheduler/internal/infra/repository"
	"github.com/tanyourpeach/tan-scheduler/internal/metrics"
	"github.com/tanyourpeach/tan-scheduler/internal/middleware"
	ucAppointment "github.com/tanyourpeach/tan-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.HTTPMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	appointmentQueries := ucAppointment.NewAppointmentQueries(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		appointmentQueries,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(db, cacheClient)
	serviceHandler := handlers.NewServiceHandler(db, cacheClient, auditDispatcher)
	inventoryHandler := handlers.NewInventoryHandler(db, auditDispatcher)
	receiptHandler := handlers.NewReceiptHandler(db)
	financialLogHandler := handlers.NewFinancialLogHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/services", serviceHandler.ListActive)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/availability", availabilityHandler.ListOpen)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		// Creation is public; everything else is decided by the access
		// policy against the caller's identity, so auth is optional here
		// and the handlers pick 401/403 per route.
		appointments := api.Group("/appointments")
		appointments.Use(middleware.OptionalAuth(cfg))
		{
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/my-appointments", appointmentHandler.MyAppointments)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.POST("", appointmentHandler.Create)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.RequireAuth(cfg), middleware.RequireAdmin())
		{
			admin.GET("/availability/all", availabilityHandler.ListAll)
			admin.POST("/availability", availabilityHandler.Create)
			admin.PUT("/availability/:id", availabilityHandler.Update)
			admin.DELETE("/availability/:id", availabilityHandler.Delete)

			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)
			admin.GET("/services/:id/inventory-usage", serviceHandler.GetUsage)
			admin.PUT("/services/:id/inventory-usage", serviceHandler.PutUsage)

			admin.GET("/inventory", inventoryHandler.List)
			admin.GET("/inventory/:id", inventoryHandler.Get)
			admin.POST("/inventory", inventoryHandler.Create)
			admin.PUT("/inventory/:id", inventoryHandler.Update)
			admin.POST("/inventory/:id/restock", inventoryHandler.Restock)
			admin.DELETE("/inventory/:id", inventoryHandler.Delete)

			admin.GET("/receipts", receiptHandler.List)
			admin.GET("/receipts/:id", receiptHandler.Get)
			admin.PATCH("/receipts/:id/payment", receiptHandler.UpdatePayment)

			admin.GET("/financial-logs", financialLogHandler.List)
			admin.GET("/financial-logs/:id", financialLogHandler.Get)
			admin.POST("/financial-logs", financialLogHandler.Create)
			admin.PUT("/financial-logs/:id", financialLogHandler.Update)
			admin.DELETE("/financial-logs/:id", financialLogHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
