package models

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidation(t *testing.T) {
	v := validator.New()

	require.NoError(t, v.Struct(LoginRequest{PhoneNumber: "9876543210", OTP: "123456"}))
	require.Error(t, v.Struct(LoginRequest{PhoneNumber: "9876543210"}))
	require.Error(t, v.Struct(LoginRequest{OTP: "123456"}))
}

func TestRetailerSignupRequestValidation(t *testing.T) {
	v := validator.New()

	complete := RetailerSignupRequest{
		Name:        "Ramesh Kumar",
		PhoneNumber: "9876543210",
		Email:       "ramesh@example.com",
		OTP:         "123456",
	}
	require.NoError(t, v.Struct(complete))

	missingOTP := complete
	missingOTP.OTP = ""
	require.Error(t, v.Struct(missingOTP))
}

func TestCategoryRequestValidation(t *testing.T) {
	v := validator.New()

	require.NoError(t, v.Struct(CategoryRequest{Name: "Grains"}))
	require.NoError(t, v.Struct(CategoryRequest{
		Name:        "Grains",
		Description: strings.Repeat("a", 500),
	}))

	require.Error(t, v.Struct(CategoryRequest{Description: "no name"}))
	require.Error(t, v.Struct(CategoryRequest{
		Name:        "Grains",
		Description: strings.Repeat("a", 501),
	}))
}

func TestCreateOrderRequestValidation(t *testing.T) {
	v := validator.New()

	complete := CreateOrderRequest{
		RetailerID:      "64f000000000000000000001",
		Products:        []OrderItemRequest{{ProductID: "64f000000000000000000002", Quantity: 2}},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      100,
	}
	require.NoError(t, v.Struct(complete))

	require.Error(t, v.Struct(CreateOrderRequest{
		Products:        complete.Products,
		DeliveryAddress: complete.DeliveryAddress,
	}))
	require.Error(t, v.Struct(CreateOrderRequest{
		RetailerID:      complete.RetailerID,
		Products:        []OrderItemRequest{},
		DeliveryAddress: complete.DeliveryAddress,
	}))
	require.Error(t, v.Struct(CreateOrderRequest{
		RetailerID:      complete.RetailerID,
		Products:        []OrderItemRequest{{Quantity: 2}},
		DeliveryAddress: complete.DeliveryAddress,
	}))
}

func TestPayoutRequestValidation(t *testing.T) {
	v := validator.New()

	require.NoError(t, v.Struct(PayoutRequest{UPIID: "ramesh@upi"}))
	require.NoError(t, v.Struct(PayoutRequest{
		AccountHolderName: "Ramesh Kumar",
		AccountNumber:     "123456789012",
		IFSCCode:          "HDFC0001234",
		BankName:          "HDFC Bank",
	}))

	require.Error(t, v.Struct(PayoutRequest{UPIID: "no-handle"}))
	require.Error(t, v.Struct(PayoutRequest{AccountNumber: "12AB"}))
	require.Error(t, v.Struct(PayoutRequest{IFSCCode: "HDFC"}))
}
