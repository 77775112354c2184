package domain

// Category groups transactions for reporting purposes.
// Deleting a category detaches it from its transactions, it never deletes them.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	AuditFields
}
