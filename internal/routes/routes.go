package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	"github.com/navalhaclub/agenda-api/internal/config"
	"github.com/navalhaclub/agenda-api/internal/handlers"
	infraRepo "github.com/navalhaclub/agenda-api/internal/infra/repository"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	rateLimiter := middleware.NewRateLimiter(rdb, cfg.PublicRateLimit)

	defaults := cfg.BusinessHours()

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	unitHandler := handlers.NewUnitHandler(db, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db)

	bookingHandler := handlers.NewBookingHandler(bookingRepo, auditDispatcher, defaults)
	clientBookingHandler := handlers.NewClientBookingHandler(bookingRepo, auditDispatcher, defaults)

	saleHandler := handlers.NewSaleHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (rate limited)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(rateLimiter.Handler())
		{
			publicAPI.GET("/units", unitHandler.PublicList)
			publicAPI.GET("/units/:unitId/staff", staffHandler.PublicList)
			publicAPI.GET("/units/:unitId/services", serviceHandler.PublicList)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(rateLimiter.Handler())
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)
			secured.POST("/auth/change-password", authHandler.ChangePassword)

			// ------------------------------
			// CLIENTE
			// ------------------------------
			secured.GET("/bookings/availability", clientBookingHandler.Availability)

			me := secured.Group("/me")
			{
				me.POST("/bookings", clientBookingHandler.Create)
				me.GET("/bookings", clientBookingHandler.ListOwn)
				me.PATCH("/bookings/:id/cancel", clientBookingHandler.Cancel)
				me.POST("/bookings/:id/rating", clientBookingHandler.Rate)
			}

			// ------------------------------
			// UNIDADE (funcionário / gerente)
			// ------------------------------
			unit := secured.Group("/unit")
			unit.Use(middleware.RequireRoles(
				models.RoleStaff,
				models.RoleManager,
				models.RoleAdmin,
			))
			{
				unit.GET("/clients", clientHandler.List)
				unit.GET("/clients/:id", clientHandler.Get)

				unit.POST("/bookings", bookingHandler.Create)
				unit.GET("/bookings", bookingHandler.List)
				unit.GET("/bookings/:id", bookingHandler.Get)
				unit.PATCH("/bookings/:id", bookingHandler.Update)
				unit.PATCH("/bookings/:id/confirm", bookingHandler.Confirm)
				unit.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
				unit.PATCH("/bookings/:id/complete", bookingHandler.Complete)

				unit.GET("/services", serviceHandler.List)
				unit.GET("/products", productHandler.List)
				unit.GET("/products/categories", productHandler.ListCategories)

				unit.POST("/sales", saleHandler.Create)
				unit.GET("/sales", saleHandler.List)
				unit.GET("/sales/:id", saleHandler.Get)
			}

			// ------------------------------
			// GESTÃO (gerente)
			// ------------------------------
			manage := secured.Group("/unit")
			manage.Use(middleware.RequireRoles(
				models.RoleManager,
				models.RoleAdmin,
			))
			{
				manage.DELETE("/bookings/:id", bookingHandler.Delete)

				manage.GET("/staff", staffHandler.List)
				manage.POST("/staff", staffHandler.Create)
				manage.PATCH("/staff/:id", staffHandler.Update)
				manage.POST("/staff/:id/reset-password", staffHandler.ResetPassword)

				manage.POST("/services", serviceHandler.Create)
				manage.PATCH("/services/:id", serviceHandler.Update)

				manage.POST("/products", productHandler.Create)
				manage.PATCH("/products/:id", productHandler.Update)
				manage.POST("/products/categories", productHandler.CreateCategory)

				manage.GET("/sales/stats", saleHandler.Stats)
				manage.PATCH("/sales/:id/invoice", saleHandler.UpdateInvoice)

				manage.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN (rede)
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/units", unitHandler.List)
				admin.GET("/units/:id", unitHandler.Get)
				admin.POST("/units", unitHandler.Create)
				admin.PATCH("/units/:id", unitHandler.Update)
			}
		}
	}
}
