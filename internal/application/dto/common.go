package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError detalle de un campo rechazado en ErrorResponse.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// MessageResponse respuesta sin datos, con mensaje opcional.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ImageDTO referencia a una imagen almacenada externamente.
type ImageDTO struct {
	PublicID string `json:"public_id" validate:"required"`
	URL      string `json:"url" validate:"required"`
}
