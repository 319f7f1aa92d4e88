package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	"github.com/finovabs/backoffice_app/internal/models"
	"github.com/finovabs/backoffice_app/internal/utils/mapping"
)

// PgxOrgRepository provides read-only lookups over the branch, supplier,
// client and user tables owned by the wider back office.
type PgxOrgRepository struct {
	BaseRepository
}

// newPgxOrgRepository creates a new repository for org lookups.
func newPgxOrgRepository(pool *pgxpool.Pool) *PgxOrgRepository {
	return &PgxOrgRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OrgRepositoryFacade = (*PgxOrgRepository)(nil)

// FindBranchByID retrieves a branch by its ID.
func (r *PgxOrgRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT branch_id, name, manager_user_id FROM branches WHERE branch_id = $1;`

	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(&m.BranchID, &m.Name, &m.ManagerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}

	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxOrgRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT supplier_id, name, email, payment_terms FROM suppliers WHERE supplier_id = $1;`

	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(&m.SupplierID, &m.Name, &m.Email, &m.PaymentTerms)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID %s: %w", supplierID, err)
	}

	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxOrgRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT client_id, name, email FROM clients WHERE client_id = $1;`

	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(&m.ClientID, &m.Name, &m.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	client := mapping.ToDomainClient(m)
	return &client, nil
}

// FindUserByID retrieves a user by its ID.
func (r *PgxOrgRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT user_id, name, email FROM users WHERE user_id = $1;`

	var m models.User
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.Name, &m.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}
