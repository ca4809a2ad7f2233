package orders

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByNumber(ctx context.Context, number string) (*Order, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]Order, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateNumber, order.Number)
	}
	return err
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("number = ?", number).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID string, limit int) ([]Order, error) {
	var orders []Order
	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Postgres reports unique violations as SQLSTATE 23505 unless the dialector
// translates errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

// memoryRepository keeps orders for the process lifetime when no database is
// configured.
type memoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.Number == order.Number {
			return fmt.Errorf("%w: %s", ErrDuplicateNumber, order.Number)
		}
	}
	stored := *order
	stored.Items = slices.Clone(order.Items)
	r.orders = append(r.orders, stored)
	return nil
}

func (r *memoryRepository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.Number == number {
			out := o
			out.Items = slices.Clone(o.Items)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, number)
}

func (r *memoryRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if o.SessionID != sessionID {
			continue
		}
		o.Items = slices.Clone(o.Items)
		out = append(out, o)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
