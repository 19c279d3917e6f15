// controllers/retailer_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/middleware"
	"github.com/mandisetu/mandisetu_backend/models"
	"github.com/mandisetu/mandisetu_backend/utils"
)

// RetailerController handles single-step retailer signup. A retailer is
// ready to transact immediately after signup; there is no KYC flow.
type RetailerController struct {
	DB *mongo.Client
}

func NewRetailerController(db *mongo.Client) *RetailerController {
	return &RetailerController{DB: db}
}

// SignupRetailer verifies the OTP and creates the account together with
// its retailer profile, then issues a JWT so the client is logged in.
func (rc *RetailerController) SignupRetailer(c echo.Context) error {
	var req models.RetailerSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}
	if !utils.IsValidPersonName(req.Name) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Name must be 2-50 letters", nil))
	}
	if !utils.IsValidPhone(req.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Please provide a valid 10-digit phone number", nil))
	}
	if !utils.IsValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Please provide a valid email address", nil))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := consumeOTP(ctx, rc.DB, req.PhoneNumber, req.OTP); err != nil {
		return otpFailureResponse(c, err)
	}

	accounts := config.GetCollection(rc.DB, "accounts")

	var existing models.Account
	err := accounts.FindOne(ctx, bson.M{"phoneNumber": req.PhoneNumber}).Decode(&existing)
	if err == nil {
		if existing.Role != models.RoleRetailer {
			return c.JSON(http.StatusForbidden, models.ApiResponse(
				http.StatusForbidden, false, "This phone number is registered as a wholesaler", nil))
		}
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "An account with this phone number already exists. Please log in", nil))
	} else if err != mongo.ErrNoDocuments {
		log.Printf("Account lookup failed for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}

	count, err := accounts.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		log.Printf("Email lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "An account with this email already exists", nil))
	}

	now := time.Now()
	account := models.Account{
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		IsPhoneVerified: true,
		IsActive:        true,
		Role:            models.RoleRetailer,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := accounts.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "An account with this phone number or email already exists", nil))
		}
		log.Printf("Account insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}
	account.ID = result.InsertedID.(primitive.ObjectID)

	profile := models.RetailerProfile{
		RetailerID:  account.ID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := config.GetCollection(rc.DB, "retailerProfiles").InsertOne(ctx, profile); err != nil {
		// The account exists without a profile; surface the failure so
		// the client retries instead of half-logging-in.
		log.Printf("Retailer profile insert failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create retailer profile", nil))
	}

	token, err := middleware.GenerateToken(&account)
	if err != nil {
		log.Printf("Token generation failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}

	return c.JSON(http.StatusCreated, models.ApiResponse(
		http.StatusCreated, true, "Retailer account created successfully", map[string]interface{}{
			"token":   token,
			"account": account,
		}))
}
