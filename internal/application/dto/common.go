package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o inválidos.
func (p *PageRequest) DefaultPage(def, max int) {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockErrorResponse rechazo por stock: incluye el lado, la ubicación y el stock disponible actual
// para que el usuario pueda corregir la cantidad.
type StockErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Leg        string `json:"leg"`
	LocationID string `json:"location_id"`
	ProductID  string `json:"product_id"`
	Available  int64  `json:"available"`
}
