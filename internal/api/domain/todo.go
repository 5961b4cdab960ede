package domain

import "time"

// Todo is a single list item owned by exactly one user.
type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string // optional, empty when unset
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
