package models

import "database/sql"

// Customer is the database representation of a customer contact record.
type Customer struct {
	CustomerID string
	Name       string
	Phone      sql.NullString
	Email      sql.NullString
	Address    sql.NullString
	AuditFields
}

// Supplier is the database representation of a supplier contact record.
type Supplier struct {
	SupplierID string
	Name       string
	Phone      sql.NullString
	Email      sql.NullString
	Address    sql.NullString
	AuditFields
}
