// server/internal/store/mongostore/request.go
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

func (s *Store) InsertRequest(ctx context.Context, req *models.AssetRequest) error {
	result, err := s.DB.Collection(requestsCollection).InsertOne(ctx, req)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return nil
}

func (s *Store) FindRequest(ctx context.Context, requestID string) (*models.AssetRequest, error) {
	var req models.AssetRequest
	err := s.DB.Collection(requestsCollection).FindOne(ctx, bson.M{"requestID": requestID}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (s *Store) FindRequestsByHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error) {
	filter := bson.M{"hrEmail": hrEmail}
	if status != "" {
		filter["status"] = status
	}
	return s.findRequests(ctx, filter)
}

func (s *Store) FindRequestsByEmployee(ctx context.Context, email, status string) ([]models.AssetRequest, error) {
	filter := bson.M{"employeeEmail": email}
	if status != "" {
		filter["status"] = status
	}
	return s.findRequests(ctx, filter)
}

func (s *Store) findRequests(ctx context.Context, filter bson.M) ([]models.AssetRequest, error) {
	cursor, err := s.DB.Collection(requestsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.AssetRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.AssetRequest{}
	}
	return requests, nil
}

func (s *Store) HasPendingRequest(ctx context.Context, email, assetID string) (bool, error) {
	count, err := s.DB.Collection(requestsCollection).CountDocuments(ctx, bson.M{
		"employeeEmail": email,
		"assetID":       assetID,
		"status":        models.StatusPending,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TransitionRequest moves the request out of `from` only if it is still
// there. Whoever loses the race gets ErrNoMatch and must not re-apply any
// side effect of the transition.
func (s *Store) TransitionRequest(ctx context.Context, requestID, from, to string, at time.Time) error {
	result, err := s.DB.Collection(requestsCollection).UpdateOne(ctx,
		bson.M{"requestID": requestID, "status": from},
		bson.M{"$set": bson.M{"status": to, "actionDate": at}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNoMatch
	}
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, requestID string) error {
	result, err := s.DB.Collection(requestsCollection).DeleteOne(ctx, bson.M{"requestID": requestID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRequestsByHREmployee(ctx context.Context, hrEmail, email string) error {
	_, err := s.DB.Collection(requestsCollection).DeleteMany(ctx, bson.M{
		"hrEmail":       hrEmail,
		"employeeEmail": email,
	})
	return err
}
