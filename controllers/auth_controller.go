// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/middleware"
	"github.com/mandisetu/mandisetu_backend/models"
	"github.com/mandisetu/mandisetu_backend/utils"
)

// AuthController handles phone+OTP login for both marketplace roles and
// token revocation on logout.
type AuthController struct {
	DB *mongo.Client
}

func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{DB: db}
}

// loginGate is the per-role admission check run after OTP verification.
// Each role defines what a login-ready account looks like.
type loginGate interface {
	// Admit returns a human-readable refusal, or "" to allow the login.
	Admit(ctx context.Context, db *mongo.Client, account *models.Account) (string, error)
}

type retailerGate struct{}

func (retailerGate) Admit(_ context.Context, _ *mongo.Client, account *models.Account) (string, error) {
	if !account.IsActive {
		return "Account is deactivated. Please contact support", nil
	}
	return "", nil
}

// wholesalerGate requires a completed shop profile and admin verification
// on top of an active account.
type wholesalerGate struct{}

func (wholesalerGate) Admit(ctx context.Context, db *mongo.Client, account *models.Account) (string, error) {
	if !account.IsActive {
		return "Account is deactivated. Please contact support", nil
	}
	if !account.HasShopDetail {
		return "Please complete your shop details before logging in", nil
	}

	var profile models.ShopProfile
	err := config.GetCollection(db, "shopProfiles").
		FindOne(ctx, bson.M{"wholesalerId": account.ID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "Please complete your shop details before logging in", nil
		}
		return "", err
	}
	if !profile.IsWholesalerVerified {
		return "Your account is pending admin verification", nil
	}
	return "", nil
}

func gateForRole(role models.Role) loginGate {
	switch role {
	case models.RoleWholesaler:
		return wholesalerGate{}
	default:
		return retailerGate{}
	}
}

// Login verifies the OTP, looks up the account by phone number, runs the
// role's admission gate and issues a JWT.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}
	if !utils.IsValidPhone(req.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Please provide a valid 10-digit phone number", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := consumeOTP(ctx, ac.DB, req.PhoneNumber, req.OTP); err != nil {
		return otpFailureResponse(c, err)
	}

	var account models.Account
	err := config.GetCollection(ac.DB, "accounts").
		FindOne(ctx, bson.M{"phoneNumber": req.PhoneNumber}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "No account found with this phone number. Please sign up first", nil))
		}
		log.Printf("Account lookup failed for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}

	role, ok := models.ParseRole(string(account.Role))
	if !ok {
		log.Printf("Account %s carries unknown role %q", account.ID.Hex(), account.Role)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}

	refusal, err := gateForRole(role).Admit(ctx, ac.DB, &account)
	if err != nil {
		log.Printf("Login gate failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}
	if refusal != "" {
		return c.JSON(http.StatusForbidden, models.ApiResponse(
			http.StatusForbidden, false, refusal, nil))
	}

	token, err := middleware.GenerateToken(&account)
	if err != nil {
		log.Printf("Token generation failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Login successful", map[string]interface{}{
			"token":   token,
			"account": account,
		}))
}

// Logout revokes the presented token until its natural expiry.
func (ac *AuthController) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" || token == auth {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "No token provided", nil))
	}

	claims, err := middleware.ParseToken(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Invalid token", nil))
	}

	middleware.BlacklistToken(token, time.Unix(claims.ExpiresAt, 0))
	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Logged out successfully", nil))
}
