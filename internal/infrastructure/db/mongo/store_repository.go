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

const collectionStores = "stores"

type StoreRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewStoreRepository(db *mongo.Database, timeout time.Duration) *StoreRepository {
	return &StoreRepository{col: db.Collection(collectionStores), timeout: timeout}
}

type mongoStore struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Address   string             `bson:"address"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (ms mongoStore) toDomain() *domain.Store {
	return &domain.Store{
		ID:        ms.ID.Hex(),
		OwnerID:   ms.OwnerID.Hex(),
		Name:      ms.Name,
		Email:     ms.Email,
		Address:   ms.Address,
		CreatedAt: ms.CreatedAt,
	}
}

// Create inserts a new store document.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) (*domain.Store, error) {
	ownerID, err := primitive.ObjectIDFromHex(s.OwnerID)
	if err != nil {
		return nil, domain.ErrInvalidOwner
	}

	doc := mongoStore{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt.UTC(),
	}
	if err := insert(ctx, "stores.create", r.timeout, r.col, doc.ID, doc, nil); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a store; malformed IDs are reported as not found.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var s mongoStore
	err = run(ctx, "stores.find_by_id", r.timeout, func(ctx context.Context) error {
		err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.toDomain(), nil
}

// List returns stores ordered by name, optionally filtered by owner and by a
// substring of name or address.
func (r *StoreRepository) List(ctx context.Context, f ports.StoreFilter) ([]*domain.Store, error) {
	filter := bson.M{}
	if f.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(f.OwnerID)
		if err != nil {
			return []*domain.Store{}, nil
		}
		filter["owner_id"] = oid
	}
	if f.Query != "" {
		pattern := containsPattern(f.Query)
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"address": pattern},
		}
	}

	var docs []mongoStore
	err := run(ctx, "stores.list", r.timeout, func(ctx context.Context) error {
		cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	stores := make([]*domain.Store, 0, len(docs))
	for _, d := range docs {
		stores = append(stores, d.toDomain())
	}
	return stores, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := run(ctx, "stores.count", r.timeout, func(ctx context.Context) error {
		var err error
		n, err = r.col.CountDocuments(ctx, bson.M{})
		return err
	})
	return n, err
}
