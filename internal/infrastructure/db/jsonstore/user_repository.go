package jsonstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

const CollectionUsers = "users"

// UserRepository implements ports.UserRepository over the users document.
type UserRepository struct {
	store *Store[domain.UsersDocument]
	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(backend Backend) *UserRepository {
	return &UserRepository{
		store: NewStore(backend, CollectionUsers, domain.UsersDocument{Users: []domain.User{}}),
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	for i := range doc.Users {
		if doc.Users[i].Username == username {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	for _, u := range doc.Users {
		if u.Username == user.Username {
			return domain.ErrUserExists
		}
	}

	doc.Users = append(doc.Users, *user)
	if err := r.store.Write(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	for i := range doc.Users {
		if doc.Users[i].Username != username {
			continue
		}
		ts := at.UTC()
		doc.Users[i].LastLogin = &ts
		if err := r.store.Write(ctx, doc); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
		return nil
	}
	return domain.ErrUserNotFound
}
