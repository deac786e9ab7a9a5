package domain

import (
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
)

// Storage is the capability set every backend implements. Backends must be
// observably identical for the same sequence of calls.
type Storage interface {
	catalogdomain.Repository
	orderdomain.Repository
	inquirydomain.Repository
	userdomain.Repository

	// Backend names the implementation, e.g. "memory" or "pgx".
	Backend() string
	Close() error
}

const (
	BackendMemory = "memory"
	BackendGorm   = "gorm"
	BackendPgx    = "pgx"
)
