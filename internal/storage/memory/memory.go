// Package memory keeps the whole store in process memory. It is meant for
// single-instance development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/seed"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
)

type Store struct {
	mu       sync.RWMutex
	genID    *snowflake.Node
	now      func() time.Time
	skipSeed bool

	products    map[int64]catalogdomain.Product
	slugIndex   map[string]int64
	orders      map[int64]orderdomain.Order
	orderItems  map[int64][]orderdomain.OrderItem
	inquiries   map[int64]inquirydomain.CorporateInquiry
	contacts    map[int64]inquirydomain.ContactForm
	newsletters map[string]inquirydomain.Newsletter
	users       map[int64]userdomain.User
	usernames   map[string]int64
}

type Option func(*Store)

// WithoutSeed leaves the catalog empty.
func WithoutSeed() Option {
	return func(s *Store) { s.skipSeed = true }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a store holding the built-in catalog unless WithoutSeed is given.
func New(genID *snowflake.Node, opts ...Option) *Store {
	s := &Store{
		genID:       genID,
		now:         func() time.Time { return time.Now().UTC() },
		products:    map[int64]catalogdomain.Product{},
		slugIndex:   map[string]int64{},
		orders:      map[int64]orderdomain.Order{},
		orderItems:  map[int64][]orderdomain.OrderItem{},
		inquiries:   map[int64]inquirydomain.CorporateInquiry{},
		contacts:    map[int64]inquirydomain.ContactForm{},
		newsletters: map[string]inquirydomain.Newsletter{},
		users:       map[int64]userdomain.User{},
		usernames:   map[string]int64{},
	}

	for _, opt := range opts {
		opt(s)
	}
	if !s.skipSeed {
		for _, p := range seed.Products() {
			s.insertProduct(p)
		}
	}
	return s
}

func (s *Store) Backend() string { return storagedomain.BackendMemory }

func (s *Store) Close() error { return nil }

func (s *Store) nextID() int64 {
	return s.genID.Generate().Int64()
}

var _ storagedomain.Storage = (*Store)(nil)

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// Reads honor cancellation even though nothing here blocks.
func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
