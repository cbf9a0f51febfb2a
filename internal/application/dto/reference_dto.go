package dto

import "time"

// CreateProductRequest entrada para crear un producto (carga de datos demo).
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"time_created"`
	UpdatedAt   time.Time `json:"time_updated"`
}

// CreateLocationRequest entrada para crear una ubicación (carga de datos demo).
type CreateLocationRequest struct {
	Name         string `json:"name"`
	OtherDetails string `json:"other_details"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OtherDetails string    `json:"other_details"`
	CreatedAt    time.Time `json:"time_created"`
	UpdatedAt    time.Time `json:"time_updated"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
