package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerate/rating-api/internal/core/domain"
)

// Migrate brings the schema to the shape the repositories rely on:
//   - rewrites role values stored by the truncated legacy column,
//   - restricts users.role to the canonical roles with a $jsonSchema validator,
//   - creates the unique and lookup indexes.
//
// Every step is idempotent.
func Migrate(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := db.Collection(collectionUsers).UpdateMany(ctx,
		bson.M{"role": "STORE_O"},
		bson.M{"$set": bson.M{"role": string(domain.RoleStoreOwner)}},
	); err != nil {
		return fmt.Errorf("migrate: repair legacy roles: %w", err)
	}

	if err := applyUserValidator(ctx, db); err != nil {
		return fmt.Errorf("migrate: users validator: %w", err)
	}

	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		collectionStores: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		collectionRatings: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "store_id", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("migrate: indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func userValidator() bson.M {
	roles := make(bson.A, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		roles = append(roles, string(r))
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"email", "password_hash", "role"},
		"properties": bson.M{
			"email": bson.M{"bsonType": "string"},
			"role":  bson.M{"enum": roles},
		},
	}}
}

func applyUserValidator(ctx context.Context, db *mongo.Database) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": collectionUsers})
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return db.CreateCollection(ctx, collectionUsers, options.CreateCollection().SetValidator(userValidator()))
	}
	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: collectionUsers},
		{Key: "validator", Value: userValidator()},
	}).Err()
}
