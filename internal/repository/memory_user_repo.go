package repository

import (
	"context"
	"sync"
	"time"

	"auth-system/internal/model"
)

// MemoryUserRepository backs STORE_DRIVER=memory and the tests. Ids are
// never reused within one instance.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]model.User
	byEmail map[string]int64
	now     func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[int64]model.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryUserRepository) Insert(ctx context.Context, u model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return model.User{}, model.ErrDuplicateEmail
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = r.now().UTC()

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

// Delete exists so tests can simulate a user vanishing after a token was issued.
func (r *MemoryUserRepository) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

func (r *MemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
