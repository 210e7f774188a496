package dto

// ErrorResponse representa una respuesta de error.
// Message solo se completa en errores de validación.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
