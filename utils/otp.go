// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mandisetu/mandisetu_backend/models"
)

var (
	ErrOTPNotFound = errors.New("OTP not found for this phone number")
	ErrOTPMismatch = errors.New("invalid OTP")
	ErrOTPExpired  = errors.New("OTP has expired")
)

// GenerateSecureOTP returns a 6-digit numeric code from crypto/rand.
func GenerateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ValidateOTPAttempts enforces the per-phone request budget. A nil client
// disables throttling (Redis is optional).
func ValidateOTPAttempts(phoneNumber string, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}

	key := "otp_attempts:" + phoneNumber
	attempts, err := rdb.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		rdb.Expire(context.Background(), key, 1*time.Hour)
	}

	// Limit to 5 attempts per hour
	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}

// VerifyPhoneOTP checks a submitted code against the stored record at the
// given instant. Mismatch is reported before expiry so a wrong code never
// leaks whether a live one exists.
func VerifyPhoneOTP(record *models.PhoneOTP, otp string, now time.Time) error {
	switch {
	case record == nil:
		return ErrOTPNotFound
	case record.OTP != otp:
		return ErrOTPMismatch
	case record.Expired(now):
		return ErrOTPExpired
	}
	return nil
}
