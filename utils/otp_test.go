package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/mandisetu/mandisetu_backend/models"
)

func TestGenerateSecureOTP(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		otp, err := GenerateSecureOTP()
		require.NoError(t, err)
		require.Regexp(t, sixDigits, otp)
	}
}

func otpRecord(created time.Time) *models.PhoneOTP {
	return &models.PhoneOTP{
		PhoneNumber: "9876543210",
		OTP:         "123456",
		CreatedAt:   created,
		ExpiresAt:   created.Add(models.OTPValidity),
	}
}

func TestVerifyPhoneOTP(t *testing.T) {
	created := time.Now()
	record := otpRecord(created)

	require.NoError(t, VerifyPhoneOTP(record, "123456", created.Add(time.Second)))
	require.ErrorIs(t, VerifyPhoneOTP(record, "654321", created.Add(time.Second)), ErrOTPMismatch)
	require.ErrorIs(t, VerifyPhoneOTP(nil, "123456", created), ErrOTPNotFound)
}

func TestVerifyPhoneOTPExpiryBoundary(t *testing.T) {
	created := time.Now()
	record := otpRecord(created)

	// Just inside the five minute window.
	require.NoError(t, VerifyPhoneOTP(record, "123456", created.Add(299*time.Second)))
	// The boundary instant itself is still valid.
	require.NoError(t, VerifyPhoneOTP(record, "123456", created.Add(300*time.Second)))
	require.ErrorIs(t, VerifyPhoneOTP(record, "123456", created.Add(301*time.Second)), ErrOTPExpired)
}

func TestVerifyPhoneOTPMismatchBeatsExpiry(t *testing.T) {
	created := time.Now()
	record := otpRecord(created)

	err := VerifyPhoneOTP(record, "000000", created.Add(10*time.Minute))
	require.ErrorIs(t, err, ErrOTPMismatch)
}

func TestValidateOTPAttempts(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, ValidateOTPAttempts("9876543210", rdb))
	}
	require.Error(t, ValidateOTPAttempts("9876543210", rdb))

	// Other numbers keep their own budget.
	require.NoError(t, ValidateOTPAttempts("9123456780", rdb))

	// The budget resets after the hour.
	mr.FastForward(time.Hour + time.Second)
	require.NoError(t, ValidateOTPAttempts("9876543210", rdb))
}

func TestValidateOTPAttemptsWithoutRedis(t *testing.T) {
	for i := 0; i < 10; i++ {
		require.NoError(t, ValidateOTPAttempts("9876543210", nil))
	}
}
