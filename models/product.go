package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GSTCategory says whether GST applies to a product's price.
type GSTCategory string

const (
	GSTExempted   GSTCategory = "exempted"
	GSTApplicable GSTCategory = "applicable"
)

// IsValidGSTCategory reports whether s is a known GST category.
func IsValidGSTCategory(s string) bool {
	return GSTCategory(s) == GSTExempted || GSTCategory(s) == GSTApplicable
}

// PriceUnits are the selling units a product may be priced in.
var PriceUnits = []string{"per kg", "per dozen", "per piece"}

// IsValidPriceUnit reports whether u is one of the fixed selling units.
func IsValidPriceUnit(u string) bool {
	for _, p := range PriceUnits {
		if p == u {
			return true
		}
	}
	return false
}

// ProductFilter is one arbitrary key/value attribute on a product.
type ProductFilter struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// ApprovalStatus is the admin review state of a product listing.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalVerified ApprovalStatus = "Verified"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Product is a wholesaler-owned catalog entry. PriceAfterGST is derived,
// never settable: every mutation path recomputes it through PriceAfterGST
// so the stored value always matches the formula.
type Product struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	WholesalerID       primitive.ObjectID `json:"wholesalerId" bson:"wholesalerId"`
	ProductName        string             `json:"productName" bson:"productName"`
	CategoryName       string             `json:"categoryName" bson:"categoryName"`
	ProductDescription string             `json:"productDescription,omitempty" bson:"productDescription,omitempty"`
	ProductImage       string             `json:"productImage" bson:"productImage"`
	PriceBeforeGST     float64            `json:"priceBeforeGst" bson:"priceBeforeGst"`
	GSTCategory        GSTCategory        `json:"gstCategory" bson:"gstCategory"`
	GSTPercent         float64            `json:"gstPercent" bson:"gstPercent"`
	PriceAfterGST      float64            `json:"priceAfterGst" bson:"priceAfterGst"`
	PriceUnit          string             `json:"priceUnit" bson:"priceUnit"`
	LastPriceUpdate    time.Time          `json:"lastPriceUpdate" bson:"lastPriceUpdate"`
	Stock              int                `json:"stock" bson:"stock"`
	MinimumRequired    int                `json:"minimumRequired" bson:"minimumRequired"`
	Filters            []ProductFilter    `json:"filters,omitempty" bson:"filters,omitempty"`
	ApprovalStatus     ApprovalStatus     `json:"approvalStatus" bson:"approvalStatus"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PriceAfterGST is the single derivation point for the stored post-GST
// price. Exempted products and a zero percent both leave the base price
// untouched.
func PriceAfterGST(priceBeforeGST float64, category GSTCategory, percent float64) float64 {
	if category == GSTExempted || percent == 0 {
		return priceBeforeGST
	}
	return priceBeforeGST + priceBeforeGST*percent/100
}

// Reprice recomputes the derived price from the product's stored GST
// fields and bumps LastPriceUpdate.
func (p *Product) Reprice(now time.Time) {
	p.PriceAfterGST = PriceAfterGST(p.PriceBeforeGST, p.GSTCategory, p.GSTPercent)
	p.LastPriceUpdate = now
}

// HighPriceEntry flags one of the caller's products as priced above the
// cheapest same-named listing from a competing wholesaler.
type HighPriceEntry struct {
	Product              Product `json:"product"`
	MinPrice             float64 `json:"minPrice"`
	PriceDifference      float64 `json:"priceDifference"`
	PercentageDifference float64 `json:"percentageDifference"`
}

// PriceAgeEntry annotates a product whose price is approaching or past
// the seven-day refresh window.
type PriceAgeEntry struct {
	Product         Product   `json:"product"`
	DaysRemaining   int       `json:"daysRemaining,omitempty"`
	DaysSinceUpdate int       `json:"daysSinceUpdate,omitempty"`
	LastPriceUpdate time.Time `json:"lastPriceUpdate"`
	ExpiryDate      time.Time `json:"expiryDate"`
}
