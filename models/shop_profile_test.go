package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPayoutUPI(t *testing.T) {
	profile := ShopProfile{
		AccountHolderName: "Ramesh Traders",
		AccountNumber:     "1234567890",
		IFSCCode:          "HDFC0001234",
		BankName:          "HDFC",
	}

	err := profile.ApplyPayout(PayoutRequest{UPIID: "ramesh@upi"})

	require.NoError(t, err)
	require.Equal(t, "ramesh@upi", profile.UPIID)
	require.Empty(t, profile.AccountHolderName)
	require.Empty(t, profile.AccountNumber)
	require.Empty(t, profile.IFSCCode)
	require.Empty(t, profile.BankName)
}

func TestApplyPayoutBankClearsUPI(t *testing.T) {
	profile := ShopProfile{UPIID: "old@upi"}

	err := profile.ApplyPayout(PayoutRequest{
		AccountHolderName: "Ramesh Traders",
		AccountNumber:     "1234567890",
		IFSCCode:          "HDFC0001234",
		BankName:          "HDFC",
	})

	require.NoError(t, err)
	require.Empty(t, profile.UPIID)
	require.Equal(t, "1234567890", profile.AccountNumber)
}

func TestApplyPayoutRejectsBoth(t *testing.T) {
	var profile ShopProfile

	err := profile.ApplyPayout(PayoutRequest{
		UPIID:         "ramesh@upi",
		AccountNumber: "1234567890",
	})

	require.ErrorIs(t, err, ErrPayoutAmbiguous)
}

func TestApplyPayoutRejectsNeither(t *testing.T) {
	var profile ShopProfile

	err := profile.ApplyPayout(PayoutRequest{})

	require.ErrorIs(t, err, ErrPayoutMissing)
}

func TestApplyPayoutRejectsPartialBank(t *testing.T) {
	var profile ShopProfile

	err := profile.ApplyPayout(PayoutRequest{
		AccountNumber: "1234567890",
		BankName:      "HDFC",
	})

	require.ErrorIs(t, err, ErrBankDetailsIncomplete)
}
