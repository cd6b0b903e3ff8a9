// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixelarium/backend/internal/config"
	"github.com/pixelarium/backend/internal/handlers"
	"github.com/pixelarium/backend/internal/middleware"
	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config, cache services.CatalogCache) (*gin.Engine, error) {
	// Initialize services
	store := repository.NewGormStore(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(store)
	productService := services.NewProductService(store, cache, storageService)
	orderService := services.NewOrderService(store)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	generalLimiter := middleware.NewGeneralRateLimiter(cfg.RateLimit)
	uploadLimiter := middleware.NewUploadRateLimiter(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	api.Use(generalLimiter.Middleware())
	{
		api.GET("/categories", handlers.GetCategories)
		api.GET("/order-statuses", handlers.GetOrderStatuses)

		// User routes
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/email/:email", userHandler.GetUserByEmail)
			users.GET("/username/:userName", userHandler.GetUserByUserName)
			users.GET("/registered/on/:date", userHandler.GetUsersRegisteredOn)
			users.GET("/registered/after/:date", userHandler.GetUsersRegisteredAfter)
			users.GET("/registered/before/:date", userHandler.GetUsersRegisteredBefore)
			users.GET("/registered/between", userHandler.GetUsersRegisteredBetween)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/price/:price", productHandler.GetProductsByPrice)
			products.GET("/price-range", productHandler.GetProductsByPriceRange)
			products.GET("/sale-price/:price", productHandler.GetProductsBySalePrice)
			products.GET("/sale-offers", productHandler.GetSaleOffers)
			products.GET("/category/:category", productHandler.GetProductsByCategory)
			products.GET("/category/:category/price/:price", productHandler.GetProductsByCategoryAndPrice)
			products.GET("/category/:category/price-range", productHandler.GetProductsByCategoryAndPriceRange)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/:id/image", uploadLimiter.Middleware(), productHandler.UploadProductImage)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/user/:id", orderHandler.GetOrdersByUser)
			orders.GET("/status/:statusType", orderHandler.GetOrdersByStatus)
			orders.GET("/date/:date", orderHandler.GetOrdersByDate)
			orders.GET("/date-range", orderHandler.GetOrdersByDateRange)
			orders.GET("/price/:price", orderHandler.GetOrdersByTotalPrice)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
			orders.PUT("/:id/status/:statusType", orderHandler.ChangeOrderStatus)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}
	}

	// Locally stored product images
	if !storageService.UsesS3() {
		r.Static("/uploads", cfg.Storage.LocalPath)
	}

	return r, nil
}
