// server/internal/store/mongostore/asset.go
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

func (s *Store) InsertAsset(ctx context.Context, asset *models.Asset) error {
	result, err := s.DB.Collection(assetsCollection).InsertOne(ctx, asset)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		asset.ID = oid
	}
	return nil
}

func (s *Store) FindAsset(ctx context.Context, assetID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.Collection(assetsCollection).FindOne(ctx, bson.M{"assetID": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (s *Store) FindAssetsByHR(ctx context.Context, hrEmail string) ([]models.Asset, error) {
	cursor, err := s.DB.Collection(assetsCollection).Find(ctx, bson.M{"hrEmail": hrEmail})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

// ReserveUnit decrements productQuantity only while it is still positive.
// The filter and the $inc run as one atomic update, so two approvers racing
// for the last unit cannot both succeed.
func (s *Store) ReserveUnit(ctx context.Context, assetID string) error {
	collection := s.DB.Collection(assetsCollection)
	filter := bson.M{"assetID": assetID, "productQuantity": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"productQuantity": -1}, "$set": bson.M{"updatedAt": time.Now()}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing asset from an exhausted one.
		count, err := collection.CountDocuments(ctx, bson.M{"assetID": assetID})
		if err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return store.ErrNoStock
	}
	return nil
}

func (s *Store) RestoreUnits(ctx context.Context, assetID string, n int) error {
	result, err := s.DB.Collection(assetsCollection).UpdateOne(ctx,
		bson.M{"assetID": assetID},
		bson.M{"$inc": bson.M{"productQuantity": n}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateAssetDetails(ctx context.Context, assetID, productName, productType string) error {
	result, err := s.DB.Collection(assetsCollection).UpdateOne(ctx,
		bson.M{"assetID": assetID},
		bson.M{"$set": bson.M{
			"productName": productName,
			"productType": productType,
			"updatedAt":   time.Now(),
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

func (s *Store) SetAssetQuantities(ctx context.Context, assetID string, total, available int) error {
	result, err := s.DB.Collection(assetsCollection).UpdateOne(ctx,
		bson.M{"assetID": assetID},
		bson.M{"$set": bson.M{
			"totalQuantity":   total,
			"productQuantity": available,
			"updatedAt":       time.Now(),
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

func (s *Store) SetAssetImage(ctx context.Context, assetID, imageURL string) error {
	result, err := s.DB.Collection(assetsCollection).UpdateOne(ctx,
		bson.M{"assetID": assetID},
		bson.M{"$set": bson.M{"productImage": imageURL, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAsset(ctx context.Context, assetID string) error {
	result, err := s.DB.Collection(assetsCollection).DeleteOne(ctx, bson.M{"assetID": assetID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
