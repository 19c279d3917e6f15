package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KycStatus tracks where a wholesaler sits in the verification workflow.
// Only Completed wholesalers may create products.
type KycStatus string

const (
	KycPending   KycStatus = "Pending"
	KycCompleted KycStatus = "Completed"
	KycRejected  KycStatus = "Rejected"
)

// BusinessTypes are the accepted legal forms for a wholesale business.
var BusinessTypes = []string{"Proprietorship", "Partnership", "Private Limited", "LLP", "Other"}

// IsValidBusinessType reports whether t is one of the accepted forms.
func IsValidBusinessType(t string) bool {
	for _, b := range BusinessTypes {
		if b == t {
			return true
		}
	}
	return false
}

// BusinessAddress is the shop's postal address.
type BusinessAddress struct {
	ShopNumber string `json:"shopNumber,omitempty" bson:"shopNumber,omitempty"`
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode    string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// GeoLocation is the shop's map position.
type GeoLocation struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// DayHours is an open/close pair in "hh:mm AM" form.
type DayHours struct {
	Open  string `json:"open" bson:"open"`
	Close string `json:"close" bson:"close"`
}

// BusinessHours split weekdays-plus-Saturday from Sunday.
type BusinessHours struct {
	MonToSat DayHours `json:"monToSat" bson:"monToSat"`
	Sunday   DayHours `json:"sunday" bson:"sunday"`
}

// ShopProfile is the one-to-one business/KYC/banking record for a
// wholesaler account. It is created empty at signup and filled
// incrementally across the onboarding steps.
type ShopProfile struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	WholesalerID primitive.ObjectID `json:"wholesalerId" bson:"wholesalerId"`
	FullName     string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber  string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`

	BusinessName    string           `json:"businessName,omitempty" bson:"businessName,omitempty"`
	BusinessType    string           `json:"businessType,omitempty" bson:"businessType,omitempty"`
	GSTNumber       string           `json:"gstNumber,omitempty" bson:"gstNumber,omitempty"`
	ApmcRegion      string           `json:"apmcRegion,omitempty" bson:"apmcRegion,omitempty"`
	BusinessAddress *BusinessAddress `json:"businessAddress,omitempty" bson:"businessAddress,omitempty"`
	Location        *GeoLocation     `json:"location,omitempty" bson:"location,omitempty"`
	BusinessHours   *BusinessHours   `json:"businessHours,omitempty" bson:"businessHours,omitempty"`
	IsShopOpen      bool             `json:"isShopOpen" bson:"isShopOpen"`

	// Opaque URLs from the upload collaborator.
	BusinessCertificate  string `json:"businessCertificate,omitempty" bson:"businessCertificate,omitempty"`
	IDProof              string `json:"idProof,omitempty" bson:"idProof,omitempty"`
	BusinessRegistration string `json:"businessRegistration,omitempty" bson:"businessRegistration,omitempty"`

	// Payout details: either UPI or a bank account, never both.
	UPIID             string `json:"upiId,omitempty" bson:"upiId,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty" bson:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty" bson:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty" bson:"ifscCode,omitempty"`
	BankName          string `json:"bankName,omitempty" bson:"bankName,omitempty"`

	KycStatus            KycStatus `json:"kycStatus" bson:"kycStatus"`
	IsWholesalerVerified bool      `json:"isWholesalerVerified" bson:"isWholesalerVerified"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PayoutRequest carries the mutually exclusive payout details for the
// KYC account step.
type PayoutRequest struct {
	UPIID             string `json:"upiId,omitempty" validate:"omitempty,contains=@"`
	AccountHolderName string `json:"accountHolderName,omitempty" validate:"omitempty,min=2,max=100"`
	AccountNumber     string `json:"accountNumber,omitempty" validate:"omitempty,numeric,min=9,max=18"`
	IFSCCode          string `json:"ifscCode,omitempty" validate:"omitempty,len=11,alphanum"`
	BankName          string `json:"bankName,omitempty" validate:"omitempty,min=2,max=100"`
}

var (
	// ErrPayoutMissing means neither payout mode was supplied.
	ErrPayoutMissing = errors.New("either a UPI id or complete bank account details are required")
	// ErrPayoutAmbiguous means both payout modes were supplied at once.
	ErrPayoutAmbiguous = errors.New("UPI id and bank account details are mutually exclusive")
	// ErrBankDetailsIncomplete means a partial bank account was supplied.
	ErrBankDetailsIncomplete = errors.New("bank account details require holder name, account number, IFSC code and bank name")
)

// ApplyPayout sets one payout mode on the profile and clears the other.
func (p *ShopProfile) ApplyPayout(req PayoutRequest) error {
	hasUPI := req.UPIID != ""
	hasBank := req.AccountHolderName != "" || req.AccountNumber != "" || req.IFSCCode != "" || req.BankName != ""

	switch {
	case hasUPI && hasBank:
		return ErrPayoutAmbiguous
	case !hasUPI && !hasBank:
		return ErrPayoutMissing
	case hasUPI:
		p.UPIID = req.UPIID
		p.AccountHolderName = ""
		p.AccountNumber = ""
		p.IFSCCode = ""
		p.BankName = ""
	default:
		if req.AccountHolderName == "" || req.AccountNumber == "" || req.IFSCCode == "" || req.BankName == "" {
			return ErrBankDetailsIncomplete
		}
		p.UPIID = ""
		p.AccountHolderName = req.AccountHolderName
		p.AccountNumber = req.AccountNumber
		p.IFSCCode = req.IFSCCode
		p.BankName = req.BankName
	}
	return nil
}
