package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mandisetu/mandisetu_backend/models"
)

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("9876543210"))
	require.False(t, IsValidPhone("987654321"))
	require.False(t, IsValidPhone("98765432100"))
	require.False(t, IsValidPhone("+919876543210"))
	require.False(t, IsValidPhone("98765 4321"))
	require.False(t, IsValidPhone(""))
}

func TestIsValidPersonName(t *testing.T) {
	require.True(t, IsValidPersonName("Ramesh Kumar"))
	require.True(t, IsValidPersonName("Jo"))
	require.False(t, IsValidPersonName("R"))
	require.False(t, IsValidPersonName("Ramesh2"))
	require.False(t, IsValidPersonName(""))
}

func TestIsValidProductName(t *testing.T) {
	require.True(t, IsValidProductName("Basmati Rice 5kg"))
	require.True(t, IsValidProductName("Ok"))
	require.False(t, IsValidProductName("A"))
	require.False(t, IsValidProductName("Rice@Wholesale"))
}

func TestIsValidCategoryName(t *testing.T) {
	require.True(t, IsValidCategoryName("Grains and Pulses"))
	require.False(t, IsValidCategoryName("G"))
	require.False(t, IsValidCategoryName("Fruits & Veg"))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("ramesh@example.com"))
	require.True(t, IsValidEmail("RAMESH@EXAMPLE.COM"))
	require.False(t, IsValidEmail("ramesh@example"))
	require.False(t, IsValidEmail("ramesh example.com"))
	require.False(t, IsValidEmail(""))
}

func TestIsValidGSTNumber(t *testing.T) {
	require.True(t, IsValidGSTNumber("27AAPFU0939F1ZV"))
	require.False(t, IsValidGSTNumber("27AAPFU0939F1XV"))
	require.False(t, IsValidGSTNumber("27aapfu0939f1zv"))
	require.False(t, IsValidGSTNumber("27AAPFU0939F1Z"))
}

func TestIsAllowedApmcRegion(t *testing.T) {
	require.True(t, IsAllowedApmcRegion("Mumbai APMC"))
	require.True(t, IsAllowedApmcRegion("Pune APMC"))
	require.False(t, IsAllowedApmcRegion("Nagpur APMC"))
	require.False(t, IsAllowedApmcRegion("mumbai apmc"))
}

func TestValidateBusinessHours(t *testing.T) {
	valid := &models.BusinessHours{
		MonToSat: models.DayHours{Open: "08:00 AM", Close: "09:30 PM"},
		Sunday:   models.DayHours{Open: "9:00 AM", Close: "01:00 PM"},
	}
	require.NoError(t, ValidateBusinessHours(valid))

	require.Error(t, ValidateBusinessHours(nil))

	badClock := &models.BusinessHours{
		MonToSat: models.DayHours{Open: "08:00", Close: "09:30 PM"},
		Sunday:   models.DayHours{Open: "9:00 AM", Close: "01:00 PM"},
	}
	require.Error(t, ValidateBusinessHours(badClock))

	twentyFourHour := &models.BusinessHours{
		MonToSat: models.DayHours{Open: "13:00 PM", Close: "09:30 PM"},
		Sunday:   models.DayHours{Open: "9:00 AM", Close: "01:00 PM"},
	}
	require.Error(t, ValidateBusinessHours(twentyFourHour))
}
