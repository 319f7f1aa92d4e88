package mapping

import (
	"github.com/finovabs/backoffice_app/internal/core/domain"
	"github.com/finovabs/backoffice_app/internal/models"
)

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:      m.BranchID,
		Name:          m.Name,
		ManagerUserID: m.ManagerUserID,
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:   m.SupplierID,
		Name:         m.Name,
		Email:        m.Email,
		PaymentTerms: domain.PaymentTerms(m.PaymentTerms),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID: m.ClientID,
		Name:     m.Name,
		Email:    m.Email,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID: m.UserID,
		Name:   m.Name,
		Email:  m.Email,
	}
}
