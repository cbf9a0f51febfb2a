package entity

import "time"

// Product representa un producto de ayuda (nombre único).
type Product struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
