// Package memory holds map-backed repositories for tests that run without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	"github.com/oksasatya/mycontacts-api/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]entity.User{}}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	r.users[u.Email] = *u
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type ContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]entity.Contact
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{contacts: map[string]entity.Contact{}}
}

func (r *ContactRepository) Create(_ context.Context, c *entity.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	r.contacts[c.ID] = *c
	return nil
}

func (r *ContactRepository) ListByOwner(_ context.Context, owner string) ([]entity.Contact, error) {
	return r.filter(owner, func(entity.Contact) bool { return true }), nil
}

func (r *ContactRepository) GetByID(_ context.Context, owner, id string) (*entity.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerEmail != owner {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *ContactRepository) Update(_ context.Context, owner, id string, patch entity.ContactPatch) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerEmail != owner {
		return nil, repository.ErrNotFound
	}
	if patch.Empty() {
		return &c, nil
	}
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.PhotoURL != nil {
		c.PhotoURL = *patch.PhotoURL
	}
	c.UpdatedAt = time.Now().UTC()
	r.contacts[id] = c
	return &c, nil
}

func (r *ContactRepository) Delete(_ context.Context, owner, id string) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerEmail != owner {
		return nil, repository.ErrNotFound
	}
	delete(r.contacts, id)
	return &c, nil
}

func (r *ContactRepository) Search(_ context.Context, owner, query string) ([]entity.Contact, error) {
	q := strings.ToLower(query)
	return r.filter(owner, func(c entity.Contact) bool {
		full := strings.ToLower(c.FirstName + " " + c.LastName)
		return strings.Contains(full, q) || strings.Contains(c.Phone, q)
	}), nil
}

func (r *ContactRepository) filter(owner string, keep func(entity.Contact) bool) []entity.Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Contact, 0)
	for _, c := range r.contacts {
		if c.OwnerEmail == owner && keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ContactRepository = (*ContactRepository)(nil)
)
