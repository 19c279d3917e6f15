package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RetailerProfile holds the retailer display fields joined into order
// responses. Created at signup alongside the Account.
type RetailerProfile struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RetailerID  primitive.ObjectID `json:"retailerId" bson:"retailerId"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	PhoneNumber string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
