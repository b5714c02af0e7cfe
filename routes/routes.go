package routes

import (
	"net/http"
	"time"

	"portflow/handlers"
	"portflow/middleware"
	"portflow/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", hb.Auth.Register)
		auth.POST("/login", hb.Auth.Login)
		auth.POST("/refresh", hb.Auth.Refresh)
		auth.POST("/logout", hb.Auth.Logout)
	}

	users := r.Group("/api/users")
	users.Use(middleware.JWTAuthMiddleware())
	{
		users.GET("/me", hb.Auth.Me)
		users.PUT("/:id", hb.Auth.UpdateUser)
		users.GET("", middleware.RequireRoles(models.RoleAdmin), hb.Auth.ListUsers)
	}
}

// RegisterBookingRoutes registers the booking lifecycle and slot grid endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", middleware.RequireRoles(models.RoleCarrier, models.RoleAdmin), hb.Bookings.CreateBooking)
		api.GET("", hb.Bookings.ListBookings)
		api.GET("/availability", hb.Bookings.Availability)
		api.GET("/:id", hb.Bookings.GetBooking)
		api.POST("/:id/cancel", middleware.RequireRoles(models.RoleCarrier, models.RoleAdmin), hb.Bookings.CancelBooking)

		// Operator decisions.
		operator := middleware.RequireRoles(models.RoleOperator, models.RoleAdmin)
		api.POST("/:id/confirm", operator, hb.Bookings.ConfirmBooking)
		api.POST("/:id/reject", operator, hb.Bookings.RejectBooking)
		api.POST("/:id/reassign-slot", operator, hb.Bookings.ReassignSlot)
		api.POST("/:id/modify", operator, hb.Bookings.ModifyBooking)
		api.POST("/:id/override", operator, hb.Bookings.ManualOverride)
		api.POST("/bulk/confirm", operator, hb.Bookings.BulkConfirm)
		api.POST("/bulk/reject", operator, hb.Bookings.BulkReject)
	}
}

// RegisterQRCodeRoutes registers gate token issuance and the scan endpoint.
func RegisterQRCodeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/qrcodes")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/booking/:id", hb.QR.GenerateQR)
		api.POST("/scan", middleware.RequireRoles(models.RoleOperator, models.RoleAdmin), hb.QR.ScanQR)
	}
}

// RegisterRegistryRoutes registers port and terminal endpoints.
func RegisterRegistryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := middleware.RequireRoles(models.RoleAdmin)

	ports := r.Group("/api/ports")
	ports.Use(middleware.JWTAuthMiddleware())
	{
		ports.GET("", hb.Registry.ListPorts)
		ports.GET("/:id", hb.Registry.GetPort)
		ports.POST("", admin, hb.Registry.CreatePort)
	}

	terminals := r.Group("/api/terminals")
	terminals.Use(middleware.JWTAuthMiddleware())
	{
		terminals.GET("", hb.Registry.ListTerminals)
		terminals.GET("/:id", hb.Registry.GetTerminal)
		terminals.GET("/:id/capacity", hb.Bookings.TerminalCapacity)
		terminals.POST("", admin, hb.Registry.CreateTerminal)
		terminals.PUT("/:id", admin, hb.Registry.SetTerminalCapacity)
	}
}

// RegisterFleetRoutes registers carrier, operator, truck and driver endpoints.
func RegisterFleetRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	carrier := middleware.RequireRoles(models.RoleCarrier, models.RoleAdmin)

	carriers := r.Group("/api/carriers")
	carriers.Use(middleware.JWTAuthMiddleware())
	{
		carriers.POST("", admin, hb.Fleet.CreateCarrier)
		carriers.GET("", admin, hb.Fleet.ListCarriers)
		carriers.GET("/me", middleware.RequireRoles(models.RoleCarrier), hb.Fleet.MyCarrier)
	}

	operators := r.Group("/api/operators")
	operators.Use(middleware.JWTAuthMiddleware())
	{
		operators.POST("", admin, hb.Fleet.CreateOperator)
		operators.GET("", admin, hb.Fleet.ListOperators)
		operators.GET("/me", middleware.RequireRoles(models.RoleOperator), hb.Fleet.MyOperator)
	}

	trucks := r.Group("/api/trucks")
	trucks.Use(middleware.JWTAuthMiddleware())
	{
		trucks.POST("", carrier, hb.Fleet.CreateTruck)
		trucks.GET("", carrier, hb.Fleet.ListTrucks)
		trucks.PUT("/:id/status", carrier, hb.Fleet.SetTruckStatus)
	}

	drivers := r.Group("/api/drivers")
	drivers.Use(middleware.JWTAuthMiddleware())
	{
		drivers.POST("", carrier, hb.Fleet.CreateDriver)
		drivers.GET("", carrier, hb.Fleet.ListDrivers)
		drivers.GET("/me", middleware.RequireRoles(models.RoleDriver), hb.Fleet.MyDriver)
		drivers.PUT("/:id/status", carrier, hb.Fleet.SetDriverStatus)
	}
}

// RegisterDashboardRoutes registers the overview and anomaly endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/admin/stats", middleware.RequireRoles(models.RoleAdmin), hb.Dashboards.AdminStats)

		operator := middleware.RequireRoles(models.RoleOperator, models.RoleAdmin)
		api.GET("/operator/overview", operator, hb.Dashboards.OperatorOverview)
		api.GET("/operator/pending-approvals", operator, hb.Dashboards.PendingApprovals)
		api.GET("/operator/today-traffic", operator, hb.Dashboards.TodayTraffic)
		api.GET("/operator/exceptions", operator, hb.Exceptions.ListExceptions)
		api.GET("/operator/exception-summary", operator, hb.Exceptions.ExceptionSummary)
		api.GET("/operator/realtime-status", operator, hb.Exceptions.RealTimeStatus)

		carrier := middleware.RequireRoles(models.RoleCarrier, models.RoleAdmin)
		api.GET("/carrier/overview", carrier, hb.Dashboards.CarrierOverview)
		api.GET("/carrier/upcoming-bookings", carrier, hb.Dashboards.UpcomingBookings)
		api.GET("/carrier/fleet-status", carrier, hb.Dashboards.FleetStatus)
	}
}

// RegisterNotificationRoutes registers the in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.Notifications.ListNotifications)
		api.GET("/unread-count", hb.Notifications.UnreadCount)
		api.POST("/mark-read", hb.Notifications.MarkRead)
		api.POST("/mark-all-read", hb.Notifications.MarkAllRead)
	}
}

// RegisterAuditRoutes registers the audit trail read endpoint.
func RegisterAuditRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/logs")
	api.Use(middleware.JWTAuthMiddleware())
	api.Use(middleware.RequireRoles(models.RoleAdmin))
	api.GET("", hb.Audit.QueryLogs)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Portflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterQRCodeRoutes(r, hb)
	RegisterRegistryRoutes(r, hb)
	RegisterFleetRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAuditRoutes(r, hb)
	RegisterHealthRoute(r)
}
