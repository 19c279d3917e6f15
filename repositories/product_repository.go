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

// ProductRepository exposes the catalog reads the order engine prices
// against.
type ProductRepository struct {
	products *mongo.Collection
}

func NewProductRepository(db *mongo.Client) *ProductRepository {
	return &ProductRepository{
		products: config.GetCollection(db, "products"),
	}
}

// FindProducts fetches the given products and returns them keyed by hex
// id. Ids that do not resolve are simply absent from the map; the caller
// decides whether that is an error.
func (r *ProductRepository) FindProducts(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	found := make(map[string]*models.Product, len(ids))
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		found[p.ID.Hex()] = &p
	}
	return found, cursor.Err()
}
