package dto

import "github.com/google/uuid"

type CrearGrupoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type GrupoResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

type CrearFamiliaRequest struct {
	NombreCientifico string `json:"nombre_cientifico" validate:"required,min=2,max=150"`
	GrupoID          string `json:"grupo_id"          validate:"required,uuid"`
}

type FamiliaResponse struct {
	ID               uuid.UUID `json:"id"`
	NombreCientifico string    `json:"nombre_cientifico"`
	GrupoID          uuid.UUID `json:"grupo_id"`
	Grupo            string    `json:"grupo,omitempty"`
}

// CrearOpcionRequest creates a global Variedad or Tamano.
type CrearOpcionRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
	// EsSurtido only applies to variants: marks the mixed-box pseudo-variant.
	EsSurtido bool `json:"es_surtido"`
}

type OpcionResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	EsSurtido bool      `json:"es_surtido,omitempty"`
}

// CrearReglaRequest: a null variedad_id / tamano_id is the wildcard.
type CrearReglaRequest struct {
	VariedadID *string `json:"variedad_id" validate:"omitempty,uuid"`
	TamanoID   *string `json:"tamano_id"   validate:"omitempty,uuid"`
}

type ReglaResponse struct {
	ID         uuid.UUID  `json:"id"`
	FamiliaID  uuid.UUID  `json:"familia_id"`
	VariedadID *uuid.UUID `json:"variedad_id"`
	TamanoID   *uuid.UUID `json:"tamano_id"`
}
