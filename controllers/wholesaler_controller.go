// controllers/wholesaler_controller.go
package controllers

import (
	"context"
	"encoding/json"
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

// WholesalerController handles wholesaler signup and the three-step shop
// onboarding: business profile, KYC documents, payout account. The steps
// run before first login, so they are addressed by the wholesaler id
// issued at signup rather than by a JWT.
type WholesalerController struct {
	DB *mongo.Client
}

func NewWholesalerController(db *mongo.Client) *WholesalerController {
	return &WholesalerController{DB: db}
}

// SignupWholesaler verifies the OTP and creates the account with an empty
// shop profile. Signing up again before finishing onboarding re-issues
// the token so the client can resume where it stopped.
func (wc *WholesalerController) SignupWholesaler(c echo.Context) error {
	var req models.WholesalerSignupRequest
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

	if err := consumeOTP(ctx, wc.DB, req.PhoneNumber, req.OTP); err != nil {
		return otpFailureResponse(c, err)
	}

	accounts := config.GetCollection(wc.DB, "accounts")

	var existing models.Account
	err := accounts.FindOne(ctx, bson.M{"phoneNumber": req.PhoneNumber}).Decode(&existing)
	if err == nil {
		if existing.Role != models.RoleWholesaler {
			return c.JSON(http.StatusForbidden, models.ApiResponse(
				http.StatusForbidden, false, "This phone number is registered as a retailer", nil))
		}
		if existing.HasShopDetail {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "An account with this phone number already exists. Please log in", nil))
		}
		// Onboarding was started but not finished.
		token, err := middleware.GenerateToken(&existing)
		if err != nil {
			log.Printf("Token generation failed for %s: %v", existing.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.ApiResponse(
				http.StatusInternalServerError, false, "Failed to sign up", nil))
		}
		return c.JSON(http.StatusOK, models.ApiResponse(
			http.StatusOK, true, "Account exists. Please complete your shop details", map[string]interface{}{
				"token":   token,
				"account": existing,
			}))
	} else if err != mongo.ErrNoDocuments {
		log.Printf("Account lookup failed for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}

	now := time.Now()
	account := models.Account{
		PhoneNumber:     req.PhoneNumber,
		IsPhoneVerified: true,
		IsActive:        true,
		Role:            models.RoleWholesaler,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := accounts.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "An account with this phone number already exists", nil))
		}
		log.Printf("Account insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}
	account.ID = result.InsertedID.(primitive.ObjectID)

	profile := models.ShopProfile{
		WholesalerID: account.ID,
		PhoneNumber:  req.PhoneNumber,
		KycStatus:    models.KycPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := config.GetCollection(wc.DB, "shopProfiles").InsertOne(ctx, profile); err != nil {
		log.Printf("Shop profile insert failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create shop profile", nil))
	}

	token, err := middleware.GenerateToken(&account)
	if err != nil {
		log.Printf("Token generation failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to sign up", nil))
	}

	return c.JSON(http.StatusCreated, models.ApiResponse(
		http.StatusCreated, true, "Wholesaler account created. Please complete your shop details", map[string]interface{}{
			"token":   token,
			"account": account,
		}))
}

// findOnboardingTarget resolves the path parameter to a wholesaler
// account and its shop profile.
func (wc *WholesalerController) findOnboardingTarget(ctx context.Context, c echo.Context) (*models.Account, *models.ShopProfile, error) {
	wholesalerID, err := primitive.ObjectIDFromHex(c.Param("wholesalerId"))
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid wholesaler id")
	}

	var account models.Account
	err = config.GetCollection(wc.DB, "accounts").
		FindOne(ctx, bson.M{"_id": wholesalerID, "role": models.RoleWholesaler}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Wholesaler account not found")
		}
		return nil, nil, err
	}

	var profile models.ShopProfile
	err = config.GetCollection(wc.DB, "shopProfiles").
		FindOne(ctx, bson.M{"wholesalerId": wholesalerID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Shop profile not found")
		}
		return nil, nil, err
	}
	return &account, &profile, nil
}

func onboardingError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return c.JSON(he.Code, models.ApiResponse(he.Code, false, he.Message.(string), nil))
	}
	log.Printf("Onboarding lookup failed: %v", err)
	return c.JSON(http.StatusInternalServerError, models.ApiResponse(
		http.StatusInternalServerError, false, "Failed to load wholesaler", nil))
}

// SubmitKycProfile is onboarding step one: the business profile plus the
// business certificate upload. Completing it flips hasShopDetail, which
// unlocks login (pending admin verification). The profile update and the
// account flag are two sequential writes; if the second fails the client
// may resubmit the step.
func (wc *WholesalerController) SubmitKycProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	account, profile, err := wc.findOnboardingTarget(ctx, c)
	if err != nil {
		return onboardingError(c, err)
	}

	businessName := c.FormValue("businessName")
	if businessName == "" {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Business name is required", nil))
	}

	businessType := c.FormValue("businessType")
	if !models.IsValidBusinessType(businessType) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid business type", nil))
	}

	apmcRegion := c.FormValue("apmcRegion")
	if !utils.IsAllowedApmcRegion(apmcRegion) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "APMC region is not supported", nil))
	}

	gstNumber := c.FormValue("gstNumber")
	if gstNumber != "" && !utils.IsValidGSTNumber(gstNumber) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid GST number format", nil))
	}

	var hours models.BusinessHours
	if raw := c.FormValue("businessHours"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &hours); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "businessHours must be valid JSON", nil))
		}
		if err := utils.ValidateBusinessHours(&hours); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, err.Error(), nil))
		}
		profile.BusinessHours = &hours
	}

	if raw := c.FormValue("businessAddress"); raw != "" {
		var addr models.BusinessAddress
		if err := json.Unmarshal([]byte(raw), &addr); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "businessAddress must be valid JSON", nil))
		}
		profile.BusinessAddress = &addr
	}

	if raw := c.FormValue("location"); raw != "" {
		var loc models.GeoLocation
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "location must be valid JSON", nil))
		}
		profile.Location = &loc
	}

	if file, err := c.FormFile("businessCertificate"); err == nil && file != nil {
		if err := utils.ValidateFileType(file.Filename, "document"); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, err.Error(), nil))
		}
		url, err := utils.SaveUpload(file, "document", "certificates")
		if err != nil {
			log.Printf("Certificate upload failed for %s: %v", account.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.ApiResponse(
				http.StatusInternalServerError, false, "Failed to save business certificate", nil))
		}
		profile.BusinessCertificate = url
	}

	profile.FullName = c.FormValue("fullName")
	profile.Email = c.FormValue("email")
	profile.BusinessName = businessName
	profile.BusinessType = businessType
	profile.ApmcRegion = apmcRegion
	profile.GSTNumber = gstNumber
	profile.UpdatedAt = time.Now()

	_, err = config.GetCollection(wc.DB, "shopProfiles").
		ReplaceOne(ctx, bson.M{"wholesalerId": account.ID}, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "This GST number is already registered", nil))
		}
		log.Printf("Shop profile update failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to save shop details", nil))
	}

	_, err = config.GetCollection(wc.DB, "accounts").UpdateOne(ctx,
		bson.M{"_id": account.ID},
		bson.M{"$set": bson.M{"hasShopDetail": true, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("hasShopDetail update failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to save shop details", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Shop details saved successfully", profile))
}

// SubmitKycDocuments is onboarding step two: identity proof and business
// registration uploads. KYC review stays Pending until an admin acts.
func (wc *WholesalerController) SubmitKycDocuments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	account, profile, err := wc.findOnboardingTarget(ctx, c)
	if err != nil {
		return onboardingError(c, err)
	}

	updates := bson.M{"updatedAt": time.Now()}

	idProof, idErr := c.FormFile("idProof")
	registration, regErr := c.FormFile("businessRegistration")
	if idErr != nil && regErr != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "At least one document is required", nil))
	}

	if idErr == nil && idProof != nil {
		if err := utils.ValidateFileType(idProof.Filename, "document"); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, err.Error(), nil))
		}
		url, err := utils.SaveUpload(idProof, "document", "documents")
		if err != nil {
			log.Printf("ID proof upload failed for %s: %v", account.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.ApiResponse(
				http.StatusInternalServerError, false, "Failed to save ID proof", nil))
		}
		updates["idProof"] = url
	}

	if regErr == nil && registration != nil {
		if err := utils.ValidateFileType(registration.Filename, "document"); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, err.Error(), nil))
		}
		url, err := utils.SaveUpload(registration, "document", "documents")
		if err != nil {
			log.Printf("Registration upload failed for %s: %v", account.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.ApiResponse(
				http.StatusInternalServerError, false, "Failed to save business registration", nil))
		}
		updates["businessRegistration"] = url
	}

	_, err = config.GetCollection(wc.DB, "shopProfiles").UpdateOne(ctx,
		bson.M{"wholesalerId": profile.WholesalerID},
		bson.M{"$set": updates})
	if err != nil {
		log.Printf("Document update failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to save documents", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Documents uploaded successfully. Verification is pending", nil))
}

// SubmitKycAccount is onboarding step three: payout details. UPI and
// bank account are mutually exclusive; setting one clears the other.
func (wc *WholesalerController) SubmitKycAccount(c echo.Context) error {
	var req models.PayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	account, profile, err := wc.findOnboardingTarget(ctx, c)
	if err != nil {
		return onboardingError(c, err)
	}

	if err := profile.ApplyPayout(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, err.Error(), nil))
	}
	profile.UpdatedAt = time.Now()

	_, err = config.GetCollection(wc.DB, "shopProfiles").
		ReplaceOne(ctx, bson.M{"wholesalerId": account.ID}, profile)
	if err != nil {
		log.Printf("Payout update failed for %s: %v", account.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to save payout details", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Payout details saved successfully", profile))
}

// GetShopProfile returns the authenticated wholesaler's shop profile.
func (wc *WholesalerController) GetShopProfile(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var profile models.ShopProfile
	err = config.GetCollection(wc.DB, "shopProfiles").
		FindOne(ctx, bson.M{"wholesalerId": wholesalerID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "Shop profile not found", nil))
		}
		log.Printf("Shop profile lookup failed for %s: %v", wholesalerID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to load shop profile", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Shop profile retrieved successfully", profile))
}
