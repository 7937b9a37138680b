package dto

const (
	// DefaultPageLimit tamaño de página cuando el cliente no lo indica.
	DefaultPageLimit = 20
	// MaxPageLimit tope de tamaño de página.
	MaxPageLimit = 100
)

// PageRequest paginación saneada para listados.
type PageRequest struct {
	Limit  int
	Offset int
}

// NewPageRequest construye una página a partir de los query params crudos,
// aplicando defaults y topes. Valores fuera de rango no son error: se ajustan.
func NewPageRequest(limit, offset int) PageRequest {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PageRequest{Limit: limit, Offset: offset}
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
