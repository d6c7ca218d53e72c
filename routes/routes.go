package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu reads need no auth
		public.GET("/menu", handlers.ListMenu)
		public.GET("/menu/:id", handlers.GetMenuItem)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Orders: visibility and on-behalf placement are decided inside
		// the handlers from the caller's capability set.
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)

		// Self-or-admin access, checked in the handlers.
		auth.GET("/users/:id", handlers.GetUser)
		auth.PUT("/users/:id", handlers.UpdateUser)
		auth.DELETE("/users/:id", handlers.DeleteUser)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired())
	{
		staff.GET("/users", middleware.CapabilityRequired(models.CapViewUsers), handlers.ListUsers)
		staff.PUT("/orders/:id/status", middleware.CapabilityRequired(models.CapUpdateOrderStatus), handlers.UpdateOrderStatus)

		menu := staff.Group("/menu", middleware.CapabilityRequired(models.CapManageMenu))
		{
			menu.POST("", handlers.CreateMenuItem)
			menu.PUT("/:id", handlers.UpdateMenuItem)
			menu.DELETE("/:id", handlers.DeleteMenuItem)
		}
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.DELETE("/orders/:id", middleware.CapabilityRequired(models.CapDeleteOrder), handlers.DeleteOrder)

		users := admin.Group("/users", middleware.CapabilityRequired(models.CapManageUsers))
		{
			users.GET("", handlers.ListUsers)
		}

		employees := admin.Group("/employees", middleware.CapabilityRequired(models.CapManageUsers))
		{
			employees.GET("", handlers.ListEmployees)
			employees.POST("", handlers.CreateEmployee)
			employees.GET("/:id", handlers.GetEmployee)
			employees.PUT("/:id", handlers.UpdateEmployee)
			employees.DELETE("/:id", handlers.DeleteEmployee)
		}

		lines := admin.Group("/order-lines", middleware.CapabilityRequired(models.CapManageOrderLines))
		{
			lines.GET("", handlers.ListOrderLines)
			lines.POST("", handlers.CreateOrderLine)
			lines.GET("/:id", handlers.GetOrderLine)
			lines.DELETE("/:id", handlers.DeleteOrderLine)
		}

		admin.GET("/menu/export", middleware.CapabilityRequired(models.CapManageMenu), handlers.ExportMenuToExcel)

		maint := admin.Group("", middleware.CapabilityRequired(models.CapMaintenance))
		{
			maint.GET("/tables", handlers.ListTables)
			maint.POST("/maintenance/reset", handlers.MaintenanceReset)
		}
	}
}
