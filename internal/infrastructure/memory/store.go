// Package memory is a process-local store used for development and tests.
// Every read and write copies, so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]entity.User
	idByKey map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[string]entity.User{}, idByKey: map[string]string{}}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.idByKey[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byID[u.ID] = *u
	r.idByKey[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.idByKey[email]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetAddressByID(ctx context.Context, id string) (*entity.UserAddress, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	return &entity.UserAddress{ID: u.ID, Email: u.Email, Address: u.Address}, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.idByKey[email]
	return ok, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if old.Email != u.Email {
		if _, taken := r.idByKey[u.Email]; taken {
			return repository.ErrDuplicateEmail
		}
		delete(r.idByKey, old.Email)
		r.idByKey[u.Email] = u.ID
	}
	r.byID[u.ID] = *u
	return nil
}

type CartRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{byEmail: map[string]*entity.Cart{}}
}

func (r *CartRepository) GetByEmail(_ context.Context, email string) (*entity.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byEmail[email].Clone(), nil
}

func (r *CartRepository) Create(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[c.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.byEmail[c.Email] = c.Clone()
	return nil
}

func (r *CartRepository) Save(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[c.Email] = c.Clone()
	return nil
}

type ProductRepository struct {
	mu   sync.RWMutex
	byID map[string]entity.Product
}

func NewProductRepository(seed ...entity.Product) *ProductRepository {
	r := &ProductRepository{byID: map[string]entity.Product{}}
	for _, p := range seed {
		r.byID[p.ID] = p
	}
	return r
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// List returns products ordered by id for stable output.
func (r *ProductRepository) List(_ context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) Upsert(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.byID[p.ID] = *p
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.ProductRepository = (*ProductRepository)(nil)
)
