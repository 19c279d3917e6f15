// controllers/admin_controller.go
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
	"golang.org/x/crypto/bcrypt"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/middleware"
	"github.com/mandisetu/mandisetu_backend/models"
)

// AdminController is the back-office surface: operator login, wholesaler
// and KYC verification, and product review.
type AdminController struct {
	DB *mongo.Client
}

func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{DB: db}
}

// Login authenticates an operator by email and bcrypt password.
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	err := config.GetCollection(ac.DB, "admins").
		FindOne(ctx, bson.M{"email": req.Email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.ApiResponse(
				http.StatusUnauthorized, false, "Invalid email or password", nil))
		}
		log.Printf("Admin lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Invalid email or password", nil))
	}

	token, err := middleware.GenerateAdminToken(&admin)
	if err != nil {
		log.Printf("Admin token generation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to log in", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Login successful", map[string]interface{}{
			"token": token,
			"admin": admin,
		}))
}

// VerifyWholesaler grants the verification flag that gates wholesaler
// login and activates the account. Two sequential single-document
// writes; a crash between them is repaired by re-verification.
func (ac *AdminController) VerifyWholesaler(c echo.Context) error {
	var req struct {
		WholesalerID string `json:"wholesalerId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	wholesalerID, err := primitive.ObjectIDFromHex(req.WholesalerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid wholesaler id", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var profile models.ShopProfile
	err = config.GetCollection(ac.DB, "shopProfiles").
		FindOne(ctx, bson.M{"wholesalerId": wholesalerID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "Shop profile not found", nil))
		}
		log.Printf("Shop profile lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to verify wholesaler", nil))
	}
	if profile.IsWholesalerVerified {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Wholesaler is already verified", nil))
	}

	_, err = config.GetCollection(ac.DB, "shopProfiles").UpdateOne(ctx,
		bson.M{"wholesalerId": wholesalerID},
		bson.M{"$set": bson.M{
			"isWholesalerVerified": true,
			"updatedAt":            time.Now(),
		}})
	if err != nil {
		log.Printf("Wholesaler verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to verify wholesaler", nil))
	}

	_, err = config.GetCollection(ac.DB, "accounts").UpdateOne(ctx,
		bson.M{"_id": wholesalerID},
		bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("Account activation failed for %s: %v", wholesalerID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to verify wholesaler", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Wholesaler verified successfully", nil))
}

// VerifyKyc resolves a wholesaler's KYC review. Only Completed unlocks
// product listing.
func (ac *AdminController) VerifyKyc(c echo.Context) error {
	wholesalerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid wholesaler id", nil))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	status := models.KycStatus(req.Status)
	if status != models.KycCompleted && status != models.KycRejected {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Status must be Completed or Rejected", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(ac.DB, "shopProfiles").UpdateOne(ctx,
		bson.M{"wholesalerId": wholesalerID},
		bson.M{"$set": bson.M{
			"kycStatus": status,
			"updatedAt": time.Now(),
		}})
	if err != nil {
		log.Printf("KYC verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update KYC status", nil))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Shop profile not found", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "KYC status updated successfully", map[string]interface{}{
			"wholesalerId": wholesalerID.Hex(),
			"kycStatus":    status,
		}))
}

// VerifyProduct resolves a product listing review.
func (ac *AdminController) VerifyProduct(c echo.Context) error {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid product id", nil))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	status := models.ApprovalStatus(req.Status)
	if status != models.ApprovalVerified && status != models.ApprovalRejected {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Status must be Verified or Rejected", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(ac.DB, "products").UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"approvalStatus": status,
			"updatedAt":      time.Now(),
		}})
	if err != nil {
		log.Printf("Product verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update product", nil))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Product not found", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Product review updated successfully", map[string]interface{}{
			"productId":      productID.Hex(),
			"approvalStatus": status,
		}))
}

// ViewAllWholesalers lists wholesaler accounts joined with their shop
// profiles for the review dashboard.
func (ac *AdminController) ViewAllWholesalers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleWholesaler}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "shopProfiles",
			"localField":   "_id",
			"foreignField": "wholesalerId",
			"as":           "shopProfile",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$shopProfile",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := config.GetCollection(ac.DB, "accounts").Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("Wholesaler list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch wholesalers", nil))
	}
	defer cursor.Close(ctx)

	wholesalers := []bson.M{}
	if err := cursor.All(ctx, &wholesalers); err != nil {
		log.Printf("Wholesaler decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch wholesalers", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Wholesalers retrieved successfully", wholesalers))
}
