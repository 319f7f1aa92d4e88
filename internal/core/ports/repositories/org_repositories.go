package repositories

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// The org readers cover data owned by the wider back office (branches,
// suppliers, clients, users). This core only ever reads them, to render
// notification text and resolve the responsible user.

// BranchReader defines read operations for branch data
type BranchReader interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
}

// SupplierReader defines read operations for supplier data
type SupplierReader interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

// ClientReader defines read operations for client data
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// OrgRepositoryFacade combines the read-only org lookups
type OrgRepositoryFacade interface {
	BranchReader
	SupplierReader
	ClientReader
	UserReader
}
