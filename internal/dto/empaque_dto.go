package dto

import "github.com/google/uuid"

type CrearTipoEmpaqueRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=50"`
}

type TipoEmpaqueResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

// CrearEmpaqueRequest: tallos_por_caja may be omitted (0) and is then derived.
type CrearEmpaqueRequest struct {
	TipoEmpaqueID string `json:"tipo_empaque_id" validate:"required,uuid"`
	Nombre        string `json:"nombre"          validate:"required,min=1,max=50"`
	TallosPorRamo int    `json:"tallos_por_ramo" validate:"required,min=1"`
	RamosPorCaja  int    `json:"ramos_por_caja"  validate:"required,min=1"`
	TallosPorCaja int    `json:"tallos_por_caja" validate:"min=0"`
}

type EmpaqueResponse struct {
	ID            uuid.UUID `json:"id"`
	TipoEmpaqueID uuid.UUID `json:"tipo_empaque_id"`
	Tipo          string    `json:"tipo,omitempty"`
	Nombre        string    `json:"nombre"`
	TallosPorRamo int       `json:"tallos_por_ramo"`
	RamosPorCaja  int       `json:"ramos_por_caja"`
	TallosPorCaja int       `json:"tallos_por_caja"`
}

type VincularEmpaquesRequest struct {
	EmpaqueIDs []string `json:"empaque_ids" validate:"dive,uuid"`
}

// OpcionesEmpaqueFilter is bound from the query string.
type OpcionesEmpaqueFilter struct {
	ClienteID   string `form:"cliente_id"   validate:"omitempty,uuid"`
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
}

type GrupoEmpaquesResponse struct {
	TipoEmpaqueID uuid.UUID         `json:"tipo_empaque_id"`
	Tipo          string            `json:"tipo"`
	Empaques      []EmpaqueResponse `json:"empaques"`
}
