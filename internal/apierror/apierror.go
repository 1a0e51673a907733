// Package apierror provides the JSON error envelope for all 4xx/5xx
// responses. Internal details (DB errors, stack traces) never reach clients.
package apierror

// APIError is the canonical error envelope. Code is set for errors a client
// can act on programmatically (e.g. retry).
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Codes
const (
	CodeNoEncontrado = "no_encontrado"
	CodeReintentable = "reintentable"
	CodeDuplicado    = "duplicado"
)

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
