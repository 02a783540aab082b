package cart

import (
	"context"
	"fmt"
	"sync"

	"feriwala/database"
	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProductLookup resolves a catalog product by id.
type ProductLookup func(ctx context.Context, id uuid.UUID) (*model.Product, error)

// CatalogLookup reads products from the products table.
func CatalogLookup(db *sqlx.DB) ProductLookup {
	return func(ctx context.Context, id uuid.UUID) (*model.Product, error) {
		return database.GetProduct(ctx, db, id)
	}
}

// Service applies cart mutations as load, mutate, save.
type Service struct {
	store  Store
	lookup ProductLookup
	mu     sync.Mutex
}

func NewService(store Store, lookup ProductLookup) *Service {
	return &Service{store: store, lookup: lookup}
}

func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(Cart) Cart) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c = fn(c)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddProduct looks the product up and merges it into the cart.
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error) {
	p, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("adding product %s to cart: %w", productID, err)
	}
	item := model.CartItemFromProduct(*p)
	return s.mutate(ctx, sessionID, func(c Cart) Cart { return c.Add(item) })
}

func (s *Service) Increase(ctx context.Context, sessionID string, id uuid.UUID) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c Cart) Cart { return c.Increase(id) })
}

func (s *Service) Decrease(ctx context.Context, sessionID string, id uuid.UUID) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c Cart) Cart { return c.Decrease(id) })
}

func (s *Service) Remove(ctx context.Context, sessionID string, id uuid.UUID) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c Cart) Cart { return c.Remove(id) })
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx, sessionID)
}
