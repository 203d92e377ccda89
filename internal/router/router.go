package router

import (
	"net/http"
	"time"

	"github.com/brightbuy/brightbuy-backend/config"
	"github.com/brightbuy/brightbuy-backend/internal/app/controller"
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	cartController     *controller.CartController
	orderController    *controller.OrderController
	locationController *controller.LocationController
	adminController    *controller.AdminController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	cartController *controller.CartController,
	orderController *controller.OrderController,
	locationController *controller.LocationController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		cartController:     cartController,
		orderController:    orderController,
		locationController: locationController,
		adminController:    adminController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(corsConfig(r.config.CORS.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "BrightBuy API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		cart := v1.Group("/cart")
		{
			cart.POST("/add", r.cartController.AddToCart)
			cart.GET("/delivery-estimate/:user_id", r.cartController.DeliveryEstimate)
			cart.PUT("/item/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/item/:id", r.cartController.RemoveCartItem)
			cart.GET("/:user_id", r.cartController.GetCart)
			cart.DELETE("/:user_id", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("/checkout", r.orderController.Checkout)
			orders.GET("/user/:user_id", r.orderController.GetUserOrders)
			orders.GET("/:order_id", r.orderController.GetOrder)
		}
		v1.POST("/checkout", r.orderController.Checkout)

		locations := v1.Group("/locations")
		{
			locations.GET("/cities", r.locationController.ListCities)
			locations.GET("/cities/:name", r.locationController.GetCity)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/orders", r.adminController.ListOrders)
			admin.PUT("/orders/:id/payment/confirm", r.adminController.ConfirmPayment)
			admin.PUT("/orders/:id/delivery-status", r.adminController.UpdateDeliveryStatus)
			admin.PUT("/variants/:id/stock", r.adminController.AdjustStock)
			admin.GET("/variants/low-stock", r.adminController.LowStock)
		}
	}

	return router
}

// corsConfig falls back to any origin without credentials when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
