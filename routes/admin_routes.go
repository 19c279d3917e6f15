package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/controllers"
	"github.com/mandisetu/mandisetu_backend/middleware"
)

// RegisterAdminRoutes sets up the back-office surface: operator login,
// verification workflows and category curation.
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client) {
	adminController := controllers.NewAdminController(db)
	categoryController := controllers.NewCategoryController(db)

	admin := e.Group("/api/admin")

	admin.POST("/login", adminController.Login)

	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.RequireAdmin())

	protected.POST("/verify-wholesaler", adminController.VerifyWholesaler)
	protected.PATCH("/wholesaler/:id/kyc-verify", adminController.VerifyKyc)
	protected.PATCH("/product/:id/verify", adminController.VerifyProduct)
	protected.GET("/wholesalers", adminController.ViewAllWholesalers)

	protected.POST("/category", categoryController.CreateCategory)
	protected.PUT("/category/:id", categoryController.UpdateCategory)
	protected.DELETE("/category/:id", categoryController.DeleteCategory)
}
