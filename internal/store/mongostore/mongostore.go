// server/internal/store/mongostore/mongostore.go
package mongostore

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names in assetVerseDB.
const (
	assetsCollection   = "assets"
	usersCollection    = "users"
	requestsCollection = "requests"
	packagesCollection = "packages"
	sessionsCollection = "checkout_sessions"
	paymentsCollection = "payments"
)

// Store implements the store interfaces on top of MongoDB. Guarded mutations
// are expressed as a single conditional UpdateOne so the "first writer wins"
// decision happens inside Mongo, not in application code.
type Store struct {
	DB *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{DB: db}
}
