package dto

import "github.com/google/uuid"

// CrearTerceroRequest creates a client or a provider.
type CrearTerceroRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=150"`
}

type TerceroResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	Activo bool      `json:"activo"`
}
