// Package memory is an in-process implementation of the repositories used as
// the test double for the services, plus the idempotency fallback used when
// Redis is disabled.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

type state struct {
	businesses map[int64]domain.Business
	menuItems  map[int64]domain.MenuItem
	orders     map[int64]domain.Order
	profiles   map[string]domain.UserProfile
	seq        int64
}

func (s *state) clone() *state {
	c := &state{
		businesses: make(map[int64]domain.Business, len(s.businesses)),
		menuItems:  make(map[int64]domain.MenuItem, len(s.menuItems)),
		orders:     make(map[int64]domain.Order, len(s.orders)),
		profiles:   make(map[string]domain.UserProfile, len(s.profiles)),
		seq:        s.seq,
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.menuItems {
		c.menuItems[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]domain.OrderLine(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	return c
}

// Store holds every table. Transactions are serialised and restore a
// snapshot on failure.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	data     *state
	failures map[string]error

	// Now is the clock used for timestamps.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newState(),
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

func newState() *state {
	return &state{
		businesses: make(map[int64]domain.Business),
		menuItems:  make(map[int64]domain.MenuItem),
		orders:     make(map[int64]domain.Order),
		profiles:   make(map[string]domain.UserProfile),
	}
}

// FailOn makes every later call of op return err. op is "<table>.<Method>",
// for example "orders.DeleteByBusiness". A nil err clears the failure.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures == nil {
		s.failures = make(map[string]error)
	}
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// fail must be called with mu held.
func (s *Store) fail(op string) error {
	return s.failures[op]
}

func (s *Store) nextID() int64 {
	s.data.seq++
	return s.data.seq
}

type txKey struct{}

// WithinTx implements interfaces.TxManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Businesses, MenuItems, Orders and Profiles expose the store through the
// repository interfaces.
func (s *Store) Businesses() *BusinessRepository { return &BusinessRepository{s: s} }
func (s *Store) MenuItems() *MenuRepository      { return &MenuRepository{s: s} }
func (s *Store) Orders() *OrderRepository        { return &OrderRepository{s: s} }
func (s *Store) Profiles() *ProfileRepository    { return &ProfileRepository{s: s} }
