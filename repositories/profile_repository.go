package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/models"
)

// ProfileRepository exposes the profile reads the catalog, order and
// login flows gate on. Returns mongo.ErrNoDocuments when a profile is
// missing.
type ProfileRepository struct {
	shopProfiles     *mongo.Collection
	retailerProfiles *mongo.Collection
}

func NewProfileRepository(db *mongo.Client) *ProfileRepository {
	return &ProfileRepository{
		shopProfiles:     config.GetCollection(db, "shopProfiles"),
		retailerProfiles: config.GetCollection(db, "retailerProfiles"),
	}
}

// FindShopProfile resolves the one-to-one shop profile of a wholesaler.
func (r *ProfileRepository) FindShopProfile(ctx context.Context, wholesalerID primitive.ObjectID) (*models.ShopProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var profile models.ShopProfile
	err := r.shopProfiles.FindOne(ctx, bson.M{"wholesalerId": wholesalerID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindRetailerProfile resolves a retailer's display profile.
func (r *ProfileRepository) FindRetailerProfile(ctx context.Context, retailerID primitive.ObjectID) (*models.RetailerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var profile models.RetailerProfile
	err := r.retailerProfiles.FindOne(ctx, bson.M{"retailerId": retailerID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
