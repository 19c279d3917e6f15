package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/controllers"
	"github.com/mandisetu/mandisetu_backend/middleware"
)

// RegisterWholesalerRoutes sets up the authenticated wholesaler surface:
// catalog management, the order book and shop profile reads.
func RegisterWholesalerRoutes(e *echo.Echo, db *mongo.Client) {
	productController := controllers.NewProductController(db)
	orderController := controllers.NewOrderController(db)
	wholesalerController := controllers.NewWholesalerController(db)
	categoryController := controllers.NewCategoryController(db)

	// Category reads are open to any authenticated user.
	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware())
	api.GET("/category", categoryController.GetAllCategories)

	product := e.Group("/api/wholesaler/product")
	product.Use(middleware.JWTMiddleware())
	product.Use(middleware.RequireWholesaler())
	product.POST("", productController.CreateProduct)
	product.GET("", productController.GetAllProducts)
	product.GET("/pending", productController.GetPendingProducts)
	product.GET("/verified", productController.GetVerifiedProducts)
	product.GET("/rejected", productController.GetRejectedProducts)
	product.GET("/out-of-stock", productController.GetOutOfStockProducts)
	product.GET("/high-price", productController.GetHighPricedProducts)
	product.GET("/expiring-prices", productController.GetExpiringPrices)
	product.GET("/expired-prices", productController.GetExpiredPrices)
	product.GET("/combined-search", productController.CombinedSearchAndFilter)
	product.PUT("/:id", productController.UpdateProduct)
	product.DELETE("/:id", productController.DeleteProduct)

	order := e.Group("/api/wholesaler/order")
	order.Use(middleware.JWTMiddleware())
	order.Use(middleware.RequireWholesaler())
	order.POST("", orderController.CreateOrder)
	order.GET("", orderController.GetAllOrders)
	order.GET("/search", orderController.SearchOrders)
	order.GET("/:id", orderController.GetOrderByID)
	order.PATCH("/:id/status", orderController.UpdateOrderStatus)

	shop := e.Group("/api/wholesaler/shop")
	shop.Use(middleware.JWTMiddleware())
	shop.Use(middleware.RequireWholesaler())
	shop.GET("", wholesalerController.GetShopProfile)
}
