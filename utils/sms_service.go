package utils

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// OTPSender delivers one-time codes to a phone number. The rest of the
// codebase treats delivery as a collaborator behind this interface.
type OTPSender interface {
	SendOTP(phoneNumber, otp string) error
}

// SMSService sends OTPs through an HTTP SMS gateway.
type SMSService struct {
	Username string
	Password string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// NewSMSService builds the gateway client from environment configuration.
// Returns nil when no gateway is configured, which disables delivery.
func NewSMSService() *SMSService {
	apiPath := os.Getenv("SMS_API_URL")
	if apiPath == "" {
		return nil
	}
	return &SMSService{
		Username: os.Getenv("SMS_USERNAME"),
		Password: os.Getenv("SMS_PASSWORD"),
		SenderID: os.Getenv("SMS_SENDER_ID"),
		APIPath:  apiPath,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendOTP sends an OTP via the configured SMS gateway.
func (s *SMSService) SendOTP(phoneNumber, otp string) error {
	params := url.Values{}
	params.Set("username", s.Username)
	params.Set("password", s.Password)
	params.Set("senderid", s.SenderID)
	params.Set("destination", phoneNumber)
	params.Set("message", fmt.Sprintf("Your MandiSetu verification code is %s. It expires in 5 minutes.", otp))

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest("POST", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(body))
	}

	responseStr := strings.ToLower(strings.TrimSpace(string(body)))
	if strings.Contains(responseStr, "success") || strings.Contains(responseStr, "sent") {
		log.Printf("OTP SMS sent to %s", phoneNumber)
		return nil
	}

	return fmt.Errorf("SMS sending failed: %s", string(body))
}
