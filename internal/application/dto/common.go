package dto

// ErrorResponse cuerpo de error HTTP.
// Field se completa en errores de validación con el primer campo inválido.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
