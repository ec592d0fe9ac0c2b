// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"asset-verse-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedPackages inserts the subscription plan catalog if it is empty. The
// catalog is read-only at runtime; HRs purchase one of these via checkout.
func SeedPackages(db *mongo.Database) error {
	collection := db.Collection("packages")

	count, err := collection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Packages already seeded. Seeding skipped.")
		return nil
	}

	log.Println("Packages not found. Seeding...")
	packages := []interface{}{
		models.Package{Name: "starter", Price: 5, EmployeeLimit: 5, Description: "Up to 5 employees"},
		models.Package{Name: "team", Price: 8, EmployeeLimit: 10, Description: "Up to 10 employees"},
		models.Package{Name: "business", Price: 15, EmployeeLimit: 20, Description: "Up to 20 employees"},
	}

	if _, err := collection.InsertMany(context.Background(), packages); err != nil {
		return err
	}

	log.Println("Packages seeded successfully.")
	return nil
}
