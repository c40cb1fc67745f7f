package domain

// Customer is a simple contact record. A customer referenced by any sale
// cannot be hard-deleted (referential integrity enforced by the store).
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	AuditFields
}

// Supplier is a simple contact record for purchasing.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	AuditFields
}
