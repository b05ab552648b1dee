package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Partial=true indica que la escritura dejó el
// recurso en un estado degradado (p. ej. líneas borradas sin reemplazo).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Partial bool   `json:"partial,omitempty"`
}
