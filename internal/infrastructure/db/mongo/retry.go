package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerate/rating-api/internal/api/metrics"
	"github.com/storerate/rating-api/internal/core/domain"
)

// maxRetries is the single immediate retry after the first attempt.
const maxRetries = 1

// settled errors are outcomes, not failures, and are never retried.
var settled = []error{
	domain.ErrNotFound,
	domain.ErrDuplicateEmail,
	domain.ErrInvalidValue,
}

// run executes fn with a per-attempt timeout, retrying once when it fails
// for any reason other than a settled outcome. A second failure is reported
// as domain.ErrStorageUnavailable.
func run(ctx context.Context, op string, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var last error
	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		last = fn(opCtx)
		if last != nil && isSettled(last) {
			return backoff.Permanent(last)
		}
		return last
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxRetries), ctx)
	notify := func(error, time.Duration) {
		metrics.StorageRetriesTotal.WithLabelValues(op).Inc()
	}

	err := backoff.RetryNotify(attempt, policy, notify)
	if err == nil || isSettled(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, last)
}

func isSettled(err error) bool {
	for _, s := range settled {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

type insertCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// insert writes doc under its pre-assigned id. A duplicate key on a retry is
// checked against that id: when the document is already there the earlier
// attempt landed and its reply was lost. Other duplicates become onDuplicate
// when it is set.
func insert(ctx context.Context, op string, timeout time.Duration, coll insertCollection, id primitive.ObjectID, doc interface{}, onDuplicate error) error {
	retrying := false
	return run(ctx, op, timeout, func(ctx context.Context) error {
		again := retrying
		retrying = true

		_, err := coll.InsertOne(ctx, doc)
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			return err
		}
		if again {
			n, cerr := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
			if cerr != nil {
				return cerr
			}
			if n > 0 {
				return nil
			}
		}
		if onDuplicate != nil {
			return onDuplicate
		}
		return err
	})
}
