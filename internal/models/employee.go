package models

// Employee represents an employee entity.
// ID is zero until the record store assigns one on first save.
type Employee struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
