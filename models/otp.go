package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPValidity is how long an issued code stays usable.
const OTPValidity = 5 * time.Minute

// PhoneOTP is one pending phone verification code. Re-requesting a code
// for the same number replaces the document.
type PhoneOTP struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	OTP         string             `json:"otp" bson:"otp"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	ExpiresAt   time.Time          `json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the code is past its validity window at now.
// The boundary instant itself still counts as valid.
func (p *PhoneOTP) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
