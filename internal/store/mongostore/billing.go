// server/internal/store/mongostore/billing.go
package mongostore

import (
	"context"
	"time"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) ListPackages(ctx context.Context) ([]models.Package, error) {
	cursor, err := s.DB.Collection(packagesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var packages []models.Package
	if err = cursor.All(ctx, &packages); err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []models.Package{}
	}
	return packages, nil
}

func (s *Store) InsertSession(ctx context.Context, sess *models.CheckoutSession) error {
	result, err := s.DB.Collection(sessionsCollection).InsertOne(ctx, sess)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sess.ID = oid
	}
	return nil
}

func (s *Store) FindSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	var sess models.CheckoutSession
	err := s.DB.Collection(sessionsCollection).FindOne(ctx, bson.M{"sessionID": sessionID}).Decode(&sess)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// MarkSessionPaid finalizes the session at most once; a retried
// payment-success call after the first one gets ErrNoMatch.
func (s *Store) MarkSessionPaid(ctx context.Context, sessionID string, at time.Time) error {
	result, err := s.DB.Collection(sessionsCollection).UpdateOne(ctx,
		bson.M{"sessionID": sessionID, "status": models.SessionCreated},
		bson.M{"$set": bson.M{"status": models.SessionPaid, "paidAt": at}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNoMatch
	}
	return nil
}

func (s *Store) InsertPayment(ctx context.Context, p *models.Payment) error {
	result, err := s.DB.Collection(paymentsCollection).InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}
