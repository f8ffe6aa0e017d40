package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	contains := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	out := []*domain.User{}
	for _, u := range r.users {
		if !contains(u.Name, f.Name) || !contains(u.Email, f.Email) || !contains(u.Address, f.Address) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.users)), nil
}

// seed inserts a user with a fixed ID, bypassing hashing.
func (r *stubUserRepo) seed(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
}

// ---------------------------------------------------------------------------
// In-memory store repository
// ---------------------------------------------------------------------------

type stubStoreRepo struct {
	mu     sync.Mutex
	stores []*domain.Store
	err    error
}

func (r *stubStoreRepo) Create(_ context.Context, s *domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	clone := *s
	clone.ID = fmt.Sprintf("s%d", len(r.stores)+1)
	r.stores = append(r.stores, &clone)
	out := clone
	return &out, nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.stores {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubStoreRepo) List(_ context.Context, f ports.StoreFilter) ([]*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	q := strings.ToLower(f.Query)
	out := []*domain.Store{}
	for _, s := range r.stores {
		if f.OwnerID != "" && s.OwnerID != f.OwnerID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Address), q) {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubStoreRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.stores)), nil
}

// ---------------------------------------------------------------------------
// In-memory rating repository. Upsert holds the lock for the whole
// insert-or-replace, mirroring the single atomic storage operation.
// ---------------------------------------------------------------------------

type ratingKey struct{ user, store string }

type stubRatingRepo struct {
	mu      sync.Mutex
	ratings map[ratingKey]domain.Rating
	err     error
	upserts int
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[ratingKey]domain.Rating)}
}

func (r *stubRatingRepo) Upsert(_ context.Context, rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.upserts++
	r.ratings[ratingKey{rating.UserID, rating.StoreID}] = *rating
	return nil
}

func (r *stubRatingRepo) Find(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	rt, ok := r.ratings[ratingKey{userID, storeID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rt, nil
}

func (r *stubRatingRepo) AverageFor(ctx context.Context, storeID string) (domain.Average, error) {
	return r.AverageForStores(ctx, []string{storeID})
}

func (r *stubRatingRepo) AverageForStores(_ context.Context, storeIDs []string) (domain.Average, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.Average{}, r.err
	}
	var sum, n int64
	for k, rt := range r.ratings {
		for _, id := range storeIDs {
			if k.store == id {
				sum += int64(rt.Value)
				n++
			}
		}
	}
	if n == 0 {
		return domain.Average{}, nil
	}
	return domain.NewAverage(float64(sum)/float64(n), n), nil
}

func (r *stubRatingRepo) ListForStores(_ context.Context, storeIDs []string) ([]domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.Rating{}
	for k, rt := range r.ratings {
		for _, id := range storeIDs {
			if k.store == id {
				out = append(out, rt)
			}
		}
	}
	return out, nil
}

func (r *stubRatingRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.ratings)), nil
}

// ---------------------------------------------------------------------------
// Token issuer and login limiter stubs
// ---------------------------------------------------------------------------

type stubIssuer struct {
	issued []domain.Principal
}

func (s *stubIssuer) Issue(subjectID string, role domain.Role) (string, error) {
	s.issued = append(s.issued, domain.Principal{SubjectID: subjectID, Role: role})
	return "token-" + subjectID + "-" + string(role), nil
}

type stubLimiter struct {
	allowed  bool
	allowErr error
	resets   []string
	checked  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.checked = append(l.checked, key)
	return l.allowed, l.allowErr
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.resets = append(l.resets, key)
	return nil
}
