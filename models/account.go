package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of marketplace principals. Accounts are created
// with exactly one role and never change it.
type Role string

const (
	RoleRetailer   Role = "Retailer"
	RoleWholesaler Role = "Wholesaler"
)

// ParseRole maps a stored or claimed role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRetailer:
		return RoleRetailer, true
	case RoleWholesaler:
		return RoleWholesaler, true
	}
	return "", false
}

// Account is the root identity record. Retailers carry name/email from
// signup; wholesalers start with just a verified phone number and fill the
// rest through shop onboarding.
type Account struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name,omitempty" bson:"name,omitempty"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	IsEmailVerified bool               `json:"isEmailVerified" bson:"isEmailVerified"`
	PhoneNumber     string             `json:"phoneNumber" bson:"phoneNumber"`
	IsPhoneVerified bool               `json:"isPhoneVerified" bson:"isPhoneVerified"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	HasShopDetail   bool               `json:"hasShopDetail" bson:"hasShopDetail"`
	Role            Role               `json:"role" bson:"role"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Admin is a back-office operator. Admins authenticate with email and
// password, never through the OTP flow.
type Admin struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SendOTPRequest asks for a one-time code on a phone number.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// LoginRequest is the common phone+OTP login body for both roles.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
}

// RetailerSignupRequest creates a retailer account in one step.
type RetailerSignupRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
}

// WholesalerSignupRequest creates a wholesaler account; profile details
// follow in the KYC steps.
type WholesalerSignupRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
}

// AdminLoginRequest authenticates a back-office operator.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response is the common API envelope shared by every handler.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// ApiResponse builds the envelope returned by every route.
func ApiResponse(statusCode int, success bool, message string, data interface{}) Response {
	return Response{
		StatusCode: statusCode,
		Success:    success,
		Message:    message,
		Data:       data,
	}
}
