package domain

// The party types below are external collaborators from this core's point of
// view: it reads them to render notification text and to resolve the
// responsible user, and never writes them.

// Branch is an organizational unit. Its manager is the responsible user for
// notifications about obligations raised by the branch.
type Branch struct {
	BranchID      string  `json:"branchID"`
	Name          string  `json:"name"`
	ManagerUserID *string `json:"managerUserID"` // Nullable; fallback user applies when unset
}

// Supplier is a counterparty the organization owes. Payment terms are fixed
// at supplier level and reused for every payment request.
type Supplier struct {
	SupplierID   string       `json:"supplierID"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PaymentTerms PaymentTerms `json:"paymentTerms"`
}

// Client is a counterparty that owes the organization.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// User is a minimal view of an application user.
type User struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
