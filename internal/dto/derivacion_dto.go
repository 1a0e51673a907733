package dto

import "github.com/google/uuid"

type ProductoMaestroResponse struct {
	ID          uuid.UUID `json:"id"`
	FamiliaID   uuid.UUID `json:"familia_id"`
	VariedadID  uuid.UUID `json:"variedad_id"`
	TamanoID    uuid.UUID `json:"tamano_id"`
	Variedad    string    `json:"variedad,omitempty"`
	Tamano      string    `json:"tamano,omitempty"`
	Nombre      string    `json:"nombre"`
	Codigo      string    `json:"codigo"`
	Descripcion string    `json:"descripcion"`
}

// DerivacionResponse reports one derive run over a family.
type DerivacionResponse struct {
	FamiliaID uuid.UUID                 `json:"familia_id"`
	Creados   int                       `json:"creados"`
	Omitidos  int                       `json:"omitidos"`
	Productos []ProductoMaestroResponse `json:"productos"`
}

type DerivacionMasivaResponse struct {
	Encoladas int `json:"encoladas"`
}
