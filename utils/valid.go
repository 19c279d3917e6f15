// utils/valid.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mandisetu/mandisetu_backend/models"
)

var (
	phoneRegex        = regexp.MustCompile(`^\d{10}$`)
	personNameRegex   = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
	productNameRegex  = regexp.MustCompile(`^[a-zA-Z0-9\s]{2,100}$`)
	categoryNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s]{2,50}$`)
	emailRegex        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indian GST identification number: 15 characters.
	gstNumberRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	// 12-hour clock, "hh:mm AM" / "hh:mm PM".
	clockRegex = regexp.MustCompile(`^(0?[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`)
)

// AllowedApmcRegions is the fixed list of approved wholesale market
// regions. TODO: move to a regions collection once admin tooling can
// manage it.
var AllowedApmcRegions = []string{"Mumbai APMC", "Delhi APMC", "Pune APMC"}

// IsValidPhone reports whether s is a bare 10-digit phone number.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsValidPersonName allows 2-50 letters and spaces.
func IsValidPersonName(s string) bool {
	return personNameRegex.MatchString(s)
}

// IsValidProductName allows 2-100 alphanumerics and spaces.
func IsValidProductName(s string) bool {
	return productNameRegex.MatchString(s)
}

// IsValidCategoryName allows 2-50 alphanumerics and spaces.
func IsValidCategoryName(s string) bool {
	return categoryNameRegex.MatchString(s)
}

// IsValidEmail does a basic shape check on an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(strings.ToLower(s))
}

// IsValidGSTNumber checks the 15-character Indian GST identification
// number format.
func IsValidGSTNumber(s string) bool {
	return gstNumberRegex.MatchString(s)
}

// IsAllowedApmcRegion reports whether region is on the approved list.
func IsAllowedApmcRegion(region string) bool {
	for _, r := range AllowedApmcRegions {
		if r == region {
			return true
		}
	}
	return false
}

// ValidateBusinessHours checks that all four open/close times are present
// and in "hh:mm AM" form.
func ValidateBusinessHours(h *models.BusinessHours) error {
	if h == nil {
		return errors.New("business hours are required")
	}
	for _, t := range []string{h.MonToSat.Open, h.MonToSat.Close, h.Sunday.Open, h.Sunday.Close} {
		if !clockRegex.MatchString(t) {
			return errors.New("invalid business hours format (e.g., '08:00 AM')")
		}
	}
	return nil
}
