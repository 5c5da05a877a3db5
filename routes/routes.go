package routes

import (
	"quickbite/handlers"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/reviews/restaurant/:id", handlers.ListRestaurantReviews)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Any authenticated user ─────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/users/me", handlers.GetProfile)
		auth.PUT("/users/me", handlers.UpdateProfile)
		auth.GET("/users/me/addresses", handlers.ListAddresses)
		auth.POST("/users/me/addresses", handlers.AddAddress)
		auth.PUT("/users/me/addresses/:id", handlers.UpdateAddress)
		auth.DELETE("/users/me/addresses/:id", handlers.DeleteAddress)

		// Role-filtered inside the handlers
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/cart", handlers.GetCart)
		customer.DELETE("/cart", handlers.ClearCart)
		customer.POST("/cart/items", handlers.AddCartItem)
		customer.PUT("/cart/items/:itemId", handlers.UpdateCartItem)
		customer.DELETE("/cart/items/:itemId", handlers.RemoveCartItem)

		customer.POST("/orders", handlers.PlaceOrder)
		customer.POST("/reviews", handlers.CreateReview)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		owner.POST("/restaurants", handlers.CreateRestaurant)
		owner.GET("/restaurants/mine", handlers.GetMyRestaurants)
		owner.PUT("/restaurants/:id", handlers.UpdateRestaurant)

		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:id", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:id", handlers.DeleteMenuItem)
	}

	// ── Status transitions & assignment ────────────────────────────
	transitions := r.Group("/api")
	transitions.Use(middleware.AuthRequired(), middleware.RoleRequired(
		models.RoleCustomer, models.RoleOwner, models.RoleDeliveryAgent))
	{
		transitions.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	assign := r.Group("/api")
	assign.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner, models.RoleAdmin))
	{
		assign.PUT("/orders/:id/assign", handlers.AssignAgent)
		assign.GET("/agents/available", handlers.ListAvailableAgents)
	}

	// ── Delivery agent routes ──────────────────────────────────────
	agent := r.Group("/api/agents")
	agent.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDeliveryAgent))
	{
		agent.GET("/me/orders", handlers.GetMyDeliveries)
		agent.PUT("/me/status", handlers.UpdateMyStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/deactivate", handlers.AdminDeactivateUser)
		admin.PUT("/users/:id/reactivate", handlers.AdminReactivateUser)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.PUT("/reviews/:id/visibility", handlers.AdminSetReviewVisibility)
	}
}
