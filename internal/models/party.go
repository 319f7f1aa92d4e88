package models

// Read-only views over tables owned by the wider back office.

// Branch mirrors the branches table.
type Branch struct {
	BranchID      string  `json:"branchID"`
	Name          string  `json:"name"`
	ManagerUserID *string `json:"managerUserID"`
}

// Supplier mirrors the suppliers table.
type Supplier struct {
	SupplierID   string `json:"supplierID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PaymentTerms string `json:"paymentTerms"`
}

// Client mirrors the clients table.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// User mirrors the users table.
type User struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
