// server/internal/store/mongostore/user.go
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

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	result, err := s.DB.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindEmployeesByHR(ctx context.Context, hrEmail string) ([]models.User, error) {
	filter := bson.M{"role": models.RoleEmployee, "affiliations.hrEmail": hrEmail}
	cursor, err := s.DB.Collection(usersCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.User
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []models.User{}
	}
	return employees, nil
}

func (s *Store) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.FindUser(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *Store) AppendAssignment(ctx context.Context, email string, a models.AssignedAsset) error {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"assets": a}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RemoveAssignment pulls the single entry created by requestID. Matching on
// requestID rather than assetID keeps the removal exact when an employee
// holds several units of the same asset.
func (s *Store) RemoveAssignment(ctx context.Context, email, requestID string) error {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"assets": bson.M{"requestID": requestID}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) RemoveAssignmentsByHR(ctx context.Context, email, hrEmail string) ([]models.AssignedAsset, error) {
	user, err := s.FindUser(ctx, email)
	if err != nil {
		return nil, err
	}

	var removed []models.AssignedAsset
	for _, a := range user.Assets {
		if a.HREmail == hrEmail {
			removed = append(removed, a)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}

	_, err = s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"assets": bson.M{"hrEmail": hrEmail}}},
	)
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// AddAffiliation pushes the record only when no affiliation with the same
// hrEmail exists yet; the duplicate guard lives in the filter so concurrent
// approvals cannot create two records.
func (s *Store) AddAffiliation(ctx context.Context, email string, aff models.Affiliation) (bool, error) {
	collection := s.DB.Collection(usersCollection)
	filter := bson.M{"email": email, "affiliations.hrEmail": bson.M{"$ne": aff.HREmail}}
	update := bson.M{"$push": bson.M{"affiliations": aff}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		// Either the user is missing or the affiliation already exists.
		count, err := collection.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			return false, err
		}
		if count == 0 {
			return false, store.ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

func (s *Store) RemoveAffiliation(ctx context.Context, email, hrEmail string) (bool, error) {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"affiliations": bson.M{"hrEmail": hrEmail}}},
	)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, store.ErrNotFound
	}
	return result.ModifiedCount > 0, nil
}

func (s *Store) AdjustEmployeeCount(ctx context.Context, hrEmail string, delta int) error {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": hrEmail, "role": models.RoleHR},
		bson.M{"$inc": bson.M{"currentEmployees": delta}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetEmployeeCount(ctx context.Context, hrEmail string, count int) error {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": hrEmail, "role": models.RoleHR},
		bson.M{"$set": bson.M{"currentEmployees": count}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountEmployeesWithAffiliation(ctx context.Context, hrEmail string) (int, error) {
	count, err := s.DB.Collection(usersCollection).CountDocuments(ctx,
		bson.M{"role": models.RoleEmployee, "affiliations.hrEmail": hrEmail})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountAssignmentsForAsset counts assignment entries, not holders: an
// employee holding two units of the same asset contributes two.
func (s *Store) CountAssignmentsForAsset(ctx context.Context, assetID string) (int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"assets.assetID": assetID}}},
		bson.D{{Key: "$unwind", Value: "$assets"}},
		bson.D{{Key: "$match", Value: bson.M{"assets.assetID": assetID}}},
		bson.D{{Key: "$count", Value: "outstanding"}},
	}
	cursor, err := s.DB.Collection(usersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Outstanding int `bson:"outstanding"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Outstanding, nil
}

func (s *Store) SetSubscription(ctx context.Context, hrEmail, packageName string, employeeLimit int, upgradedAt time.Time) error {
	result, err := s.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"email": hrEmail, "role": models.RoleHR},
		bson.M{"$set": bson.M{
			"subscription": packageName,
			"packageLimit": employeeLimit,
			"paid":         true,
			"upgradedAt":   upgradedAt,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
