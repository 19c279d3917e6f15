// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes connection to MongoDB
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	// Only use the Docker service name as fallback in development
	if mongoURI == "" {
		env := os.Getenv("ENV")
		if env == "development" || env == "dev" {
			mongoURI = "mongodb://mongodb:27017"
		} else {
			log.Fatal("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
	}

	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// DatabaseName returns the configured database name.
func DatabaseName() string {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "mandisetu"
	}
	return dbName
}

// GetCollection returns MongoDB collection
func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(DatabaseName()).Collection(collectionName)
}

// setupCollections ensures all necessary collections and indexes exist
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(DatabaseName())

	collections := []string{
		"accounts", "retailerProfiles", "shopProfiles",
		"categories", "products", "orders", "phoneOtps", "admins",
	}
	for _, collName := range collections {
		db.CreateCollection(ctx, collName)
	}

	unique := func(coll string, keys bson.D, sparse bool) {
		opts := options.Index().SetUnique(true)
		if sparse {
			opts = opts.SetSparse(true)
		}
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    keys,
			Options: opts,
		})
		if err != nil {
			log.Printf("Error creating index on %s: %v", coll, err)
		}
	}

	unique("accounts", bson.D{{Key: "phoneNumber", Value: 1}}, false)
	unique("accounts", bson.D{{Key: "email", Value: 1}}, true)
	unique("retailerProfiles", bson.D{{Key: "retailerId", Value: 1}}, false)
	unique("shopProfiles", bson.D{{Key: "wholesalerId", Value: 1}}, false)
	unique("shopProfiles", bson.D{{Key: "gstNumber", Value: 1}}, true)
	unique("categories", bson.D{{Key: "name", Value: 1}}, false)
	unique("phoneOtps", bson.D{{Key: "phoneNumber", Value: 1}}, false)
	unique("admins", bson.D{{Key: "email", Value: 1}}, false)

	// Non-unique lookup indexes for the hot query paths.
	for coll, keys := range map[string]bson.D{
		"products": {{Key: "wholesalerId", Value: 1}, {Key: "createdAt", Value: -1}},
		"orders":   {{Key: "wholesalerId", Value: 1}, {Key: "createdAt", Value: -1}},
	} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
		if err != nil {
			log.Printf("Error creating index on %s: %v", coll, err)
		}
	}
	_, err := db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productName", Value: 1}},
	})
	if err != nil {
		log.Printf("Error creating productName index: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
