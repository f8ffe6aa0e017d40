package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

const collectionRatings = "ratings"

// RatingRepository implements ports.RatingRepository using MongoDB. The
// (user_id, store_id) unique index created by Migrate backs the upsert.
type RatingRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *mongo.Database, timeout time.Duration) ports.RatingRepository {
	return &RatingRepository{coll: db.Collection(collectionRatings), timeout: timeout}
}

type mongoRating struct {
	UserID    primitive.ObjectID `bson:"user_id"`
	StoreID   primitive.ObjectID `bson:"store_id"`
	Value     int                `bson:"value"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mr mongoRating) toDomain() domain.Rating {
	return domain.Rating{
		UserID:    mr.UserID.Hex(),
		StoreID:   mr.StoreID.Hex(),
		Value:     mr.Value,
		UpdatedAt: mr.UpdatedAt,
	}
}

// Upsert sets the rating value in one atomic update-with-upsert keyed by
// (user_id, store_id). Two racing first inserts can make the loser hit the
// unique index; the retry in run then matches the winner's document and
// overwrites it, so the last write still wins.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	userID, err := primitive.ObjectIDFromHex(rating.UserID)
	if err != nil {
		return domain.ErrNotFound
	}
	storeID, err := primitive.ObjectIDFromHex(rating.StoreID)
	if err != nil {
		return domain.ErrNotFound
	}

	ts := rating.UpdatedAt.UTC()
	filter := bson.M{"user_id": userID, "store_id": storeID}
	update := bson.M{
		"$set":         bson.M{"value": rating.Value, "updated_at": ts},
		"$setOnInsert": bson.M{"created_at": ts},
	}

	return run(ctx, "ratings.upsert", r.timeout, func(ctx context.Context) error {
		_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		return err
	})
}

func (r *RatingRepository) Find(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	sid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var mr mongoRating
	err = run(ctx, "ratings.find", r.timeout, func(ctx context.Context) error {
		err := r.coll.FindOne(ctx, bson.M{"user_id": uid, "store_id": sid}).Decode(&mr)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	rating := mr.toDomain()
	return &rating, nil
}

func (r *RatingRepository) AverageFor(ctx context.Context, storeID string) (domain.Average, error) {
	return r.AverageForStores(ctx, []string{storeID})
}

// AverageForStores averages on the server; an empty match yields no group
// and therefore an Average without data.
func (r *RatingRepository) AverageForStores(ctx context.Context, storeIDs []string) (domain.Average, error) {
	oids := objectIDs(storeIDs)
	if len(oids) == 0 {
		return domain.Average{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "store_id", Value: bson.D{{Key: "$in", Value: oids}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$value"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	err := run(ctx, "ratings.average", r.timeout, func(ctx context.Context) error {
		cur, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		return cur.All(ctx, &rows)
	})
	if err != nil {
		return domain.Average{}, err
	}
	if len(rows) == 0 {
		return domain.Average{}, nil
	}
	return domain.NewAverage(rows[0].Avg, rows[0].Count), nil
}

func (r *RatingRepository) ListForStores(ctx context.Context, storeIDs []string) ([]domain.Rating, error) {
	oids := objectIDs(storeIDs)
	if len(oids) == 0 {
		return []domain.Rating{}, nil
	}

	var docs []mongoRating
	err := run(ctx, "ratings.list", r.timeout, func(ctx context.Context) error {
		cur, err := r.coll.Find(ctx, bson.M{"store_id": bson.M{"$in": oids}})
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	ratings := make([]domain.Rating, 0, len(docs))
	for _, d := range docs {
		ratings = append(ratings, d.toDomain())
	}
	return ratings, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := run(ctx, "ratings.count", r.timeout, func(ctx context.Context) error {
		var err error
		n, err = r.coll.CountDocuments(ctx, bson.M{})
		return err
	})
	return n, err
}
