// controllers/otp_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/models"
	"github.com/mandisetu/mandisetu_backend/utils"
)

// OTPController issues one-time codes for phone verification. Codes are
// stored one-per-phone; a new request replaces any outstanding code.
type OTPController struct {
	DB     *mongo.Client
	Sender utils.OTPSender
}

func NewOTPController(db *mongo.Client, sender utils.OTPSender) *OTPController {
	return &OTPController{DB: db, Sender: sender}
}

// SendPhoneOTP generates a 6-digit code for the given phone number and
// hands it to the SMS collaborator. The code is echoed in the response
// data so clients without SMS delivery can still complete the flow.
func (oc *OTPController) SendPhoneOTP(c echo.Context) error {
	var req models.SendOTPRequest
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

	if err := utils.ValidateOTPAttempts(req.PhoneNumber, config.GetRedisClient()); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.ApiResponse(
			http.StatusTooManyRequests, false, "Too many OTP requests. Please try again later", nil))
	}

	otp, err := utils.GenerateSecureOTP()
	if err != nil {
		log.Printf("Failed to generate OTP: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to generate OTP", nil))
	}

	now := time.Now()
	record := models.PhoneOTP{
		PhoneNumber: req.PhoneNumber,
		OTP:         otp,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.OTPValidity),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(oc.DB, "phoneOtps")
	_, err = collection.UpdateOne(ctx,
		bson.M{"phoneNumber": req.PhoneNumber},
		bson.M{"$set": record},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("Failed to store OTP for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to send OTP", nil))
	}

	if oc.Sender != nil {
		if err := oc.Sender.SendOTP(req.PhoneNumber, otp); err != nil {
			// Delivery failure is non-fatal: the code is in the response.
			log.Printf("SMS delivery failed for %s: %v", req.PhoneNumber, err)
		}
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "OTP sent successfully", map[string]interface{}{
			"phoneNumber": req.PhoneNumber,
			"otp":         otp,
			"expiresAt":   record.ExpiresAt,
		}))
}

// consumeOTP verifies the supplied code against the stored record and
// deletes it on success, so a code is never usable twice.
func consumeOTP(ctx context.Context, db *mongo.Client, phoneNumber, otp string) error {
	collection := config.GetCollection(db, "phoneOtps")

	var record models.PhoneOTP
	err := collection.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.ErrOTPNotFound
		}
		return err
	}

	if err := utils.VerifyPhoneOTP(&record, otp, time.Now()); err != nil {
		return err
	}

	_, err = collection.DeleteOne(ctx, bson.M{"phoneNumber": phoneNumber})
	return err
}

// validationFailure maps a request validation error onto the envelope.
func validationFailure(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ApiResponse(
		http.StatusBadRequest, false, "Validation failed", map[string]interface{}{
			"error": err.Error(),
		}))
}

// otpFailureResponse maps OTP verification errors onto the envelope.
func otpFailureResponse(c echo.Context, err error) error {
	switch err {
	case utils.ErrOTPNotFound:
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "No OTP found for this phone number. Please request a new one", nil))
	case utils.ErrOTPMismatch:
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid OTP", nil))
	case utils.ErrOTPExpired:
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "OTP has expired. Please request a new one", nil))
	default:
		log.Printf("OTP verification failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to verify OTP", nil))
	}
}
