// Package catalog implements create and lookup of users, products and orders.
//
// Lookups may be served from a cache. Catalog records are never updated or
// deleted, so a cached copy stays valid until it expires.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"record-service/internal/cache"
	"record-service/internal/models"
	"record-service/internal/resilience"
)

// Store persists catalog records. Get methods return models.ErrNotFound when
// the id does not exist.
type Store interface {
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateOrder(ctx context.Context, o models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type Service struct {
	store    Store
	cache    Cache
	cacheTTL time.Duration
	cacheCB  *resilience.CircuitBreaker
	now      func() time.Time
}

type Option func(*Service)

// WithCache enables read-through caching of lookups.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		cacheCB: resilience.NewCircuitBreaker("catalog-cache", 3, 10*time.Second),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error) {
	user, err := s.store.CreateUser(ctx, models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("User created", "user_id", user.ID)
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := lookup(ctx, s, fmt.Sprintf("catalog:user:%d", id), func() (*models.User, error) {
		return s.store.GetUser(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "User")
	}
	return user, nil
}

// CreateProduct truncates the price toward zero. Prices that do not fit an
// int64 are rejected with models.ErrInvalid.
func (s *Service) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	price, err := truncatePrice(in.Price)
	if err != nil {
		return nil, err
	}
	product, err := s.store.CreateProduct(ctx, models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Product created", "product_id", product.ID)
	return product, nil
}

// truncatePrice converts p toward zero. float64(math.MaxInt64) rounds up to
// 2^63, so the upper bound is exclusive.
func truncatePrice(p float64) (int64, error) {
	t := math.Trunc(p)
	if math.IsNaN(t) || t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, fmt.Errorf("price %v is out of range: %w", p, models.ErrInvalid)
	}
	return int64(t), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := lookup(ctx, s, fmt.Sprintf("catalog:product:%d", id), func() (*models.Product, error) {
		return s.store.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}
	return product, nil
}

// CreateOrder checks that the user and then the product exist before
// inserting. The checks and the insert do not share a transaction.
func (s *Service) CreateOrder(ctx context.Context, in models.OrderCreate) (*models.Order, error) {
	if _, err := s.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.GetProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	order, err := s.store.CreateOrder(ctx, models.Order{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Date:      s.now().UTC(),
		Status:    models.OrderStatusCreated,
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Order created", "order_id", order.ID, "user_id", order.UserID, "product_id", order.ProductID)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := lookup(ctx, s, fmt.Sprintf("catalog:order:%d", id), func() (*models.Order, error) {
		return s.store.GetOrder(ctx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, "Order")
	}
	return order, nil
}

// lookup returns the cached value for key, or loads it from the store and
// caches it. Cache errors are logged and never returned. Cached users carry no
// password since it is not part of their JSON form.
func lookup[T any](ctx context.Context, s *Service, key string, load func() (*T, error)) (*T, error) {
	if s.cache != nil {
		var data []byte
		err := s.cacheCB.Execute(func() error {
			var err error
			data, err = s.cache.Get(ctx, key)
			if errors.Is(err, cache.ErrMiss) {
				return nil
			}
			return err
		})
		switch {
		case err == nil && data != nil:
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				slog.Debug("Cache hit", "key", key)
				return &cached, nil
			}
			slog.Warn("Discarding undecodable cache entry", "key", key)
		case err != nil && !errors.Is(err, resilience.ErrOpen):
			slog.Warn("Cache read failed", "key", key, "error", err)
		}
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		err := s.cacheCB.Execute(func() error {
			data, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			return s.cache.Set(ctx, key, data, s.cacheTTL)
		})
		if err != nil && !errors.Is(err, resilience.ErrOpen) {
			slog.Warn("Cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}

func notFoundAs(err error, resource string) error {
	if errors.Is(err, models.ErrNotFound) {
		return &models.NotFoundError{Resource: resource}
	}
	return err
}
