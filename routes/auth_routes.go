package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/controllers"
	"github.com/mandisetu/mandisetu_backend/utils"
)

// RegisterAuthRoutes sets up the public authentication and onboarding
// routes. The KYC steps run before first login, so they are public and
// addressed by wholesaler id.
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, sender utils.OTPSender) {
	otpController := controllers.NewOTPController(db, sender)
	authController := controllers.NewAuthController(db)
	retailerController := controllers.NewRetailerController(db)
	wholesalerController := controllers.NewWholesalerController(db)

	e.POST("/api/otp", otpController.SendPhoneOTP)

	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout)

	e.POST("/api/retailer/auth/signup", retailerController.SignupRetailer)

	wholesaler := e.Group("/api/wholesaler/auth")
	wholesaler.POST("/signup", wholesalerController.SignupWholesaler)
	wholesaler.POST("/kyc/profile/:wholesalerId", wholesalerController.SubmitKycProfile)
	wholesaler.POST("/kyc/documents/:wholesalerId", wholesalerController.SubmitKycDocuments)
	wholesaler.POST("/kyc/account/:wholesalerId", wholesalerController.SubmitKycAccount)
}
