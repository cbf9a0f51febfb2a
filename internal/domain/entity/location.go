package entity

import "time"

// Location representa un centro o bodega donde se guarda stock (nombre único).
type Location struct {
	ID           string
	Name         string
	OtherDetails string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
