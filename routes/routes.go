package routes

import (
	"ecommerce-api/handlers"
	"ecommerce-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog (no auth needed)
		public.GET("/products", handlers.ListProducts)
		public.GET("/products/:id", handlers.GetProduct)
		public.GET("/products/featured/list", handlers.ListFeaturedProducts)
		public.GET("/products/categories/list", handlers.ListCategories)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/users/profile", handlers.GetProfile)
		auth.PUT("/users/profile", handlers.UpdateProfile)

		auth.GET("/users/addresses", handlers.ListAddresses)
		auth.POST("/users/addresses", handlers.CreateAddress)
		auth.PUT("/users/addresses/:id", handlers.UpdateAddress)
		auth.DELETE("/users/addresses/:id", handlers.DeleteAddress)

		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.GET("/orders/:id/delivery", handlers.GetOrderDelivery)

		auth.POST("/payments", handlers.CreatePayment)
		auth.GET("/payments/:id", handlers.GetPayment)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/products", handlers.AdminListProducts)
		admin.POST("/products", handlers.AdminCreateProduct)
		admin.PUT("/products/:id", handlers.AdminUpdateProduct)
		admin.PUT("/products/:id/stock", handlers.AdminUpdateStock)
		admin.DELETE("/products/:id", handlers.AdminDeactivateProduct)

		admin.GET("/orders", handlers.AdminListOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)

		admin.GET("/users", handlers.AdminListUsers)
		admin.PUT("/users/:id/tier", handlers.AdminUpdateTier)

		admin.GET("/stats", handlers.DashboardStats)
		admin.GET("/reports/sales", handlers.SalesReport)
	}
}
