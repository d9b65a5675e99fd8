package memory

import (
	"context"
	"sync"

	"blog/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepositoryMemory پیاده‌سازی UserRepository در حافظه
type UserRepositoryMemory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{users: make(map[uuid.UUID]user.User)}
}

func (repo *UserRepositoryMemory) Create(ctx context.Context, u *user.User) (*user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Username == u.Username {
			return nil, user.ErrUsernameTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	repo.users[u.ID] = *u
	return u, nil
}

func (repo *UserRepositoryMemory) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, u := range repo.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrNotFound
}

func (repo *UserRepositoryMemory) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := repo.get(id)
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (repo *UserRepositoryMemory) get(id uuid.UUID) (user.User, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	u, ok := repo.users[id]
	return u, ok
}
