package domain

import "time"

// Profile is the display record created alongside registration. The wider
// product owns profile editing; registration only seeds it.
type Profile struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
