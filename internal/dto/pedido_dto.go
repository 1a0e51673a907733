package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SurtidoItemRequest struct {
	VariedadID string `json:"variedad_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type LineaPedidoRequest struct {
	ProductoID         string               `json:"producto_id"         validate:"required,uuid"`
	ProveedorID        *string              `json:"proveedor_id"        validate:"omitempty,uuid"`
	EmpaqueID          *string              `json:"empaque_id"          validate:"omitempty,uuid"`
	Cantidad           int                  `json:"cantidad"            validate:"min=0"`
	Cajas              int                  `json:"cajas"               validate:"min=0"`
	PrecioUnitario     decimal.Decimal      `json:"precio_unitario"     validate:"min=0"`
	CostoProveedor     decimal.Decimal      `json:"costo_proveedor"     validate:"min=0"`
	PorcentajeImpuesto decimal.Decimal      `json:"porcentaje_impuesto" validate:"min=0,max=100"`
	PorcentajeExencion decimal.Decimal      `json:"porcentaje_exencion" validate:"min=0,max=100"`
	Surtido            []SurtidoItemRequest `json:"surtido"             validate:"omitempty,dive"`
}

type GuardarPedidoRequest struct {
	Fecha          string               `json:"fecha"           validate:"required,datetime=2006-01-02"`
	ClienteID      *string              `json:"cliente_id"      validate:"omitempty,uuid"`
	Terminal       *string              `json:"terminal"        validate:"omitempty,max=50"`
	Agencia        *string              `json:"agencia"         validate:"omitempty,max=100"`
	AWB            *string              `json:"awb"             validate:"omitempty,max=30"`
	EsExportacion  *bool                `json:"es_exportacion"`
	ExcluirReporte bool                 `json:"excluir_reporte"`
	Observaciones  *string              `json:"observaciones"`
	Lineas         []LineaPedidoRequest `json:"lineas"          validate:"required,min=1,dive"`
}

type ReemplazarSurtidoRequest struct {
	Items []SurtidoItemRequest `json:"items" validate:"dive"`
}

type SurtidoItemResponse struct {
	VariedadID uuid.UUID `json:"variedad_id"`
	Variedad   string    `json:"variedad,omitempty"`
	Cantidad   int       `json:"cantidad"`
}

type LineaPedidoResponse struct {
	ID                 uuid.UUID             `json:"id"`
	ProductoID         uuid.UUID             `json:"producto_id"`
	FamiliaID          uuid.UUID             `json:"familia_id"`
	VariedadID         uuid.UUID             `json:"variedad_id"`
	TamanoID           uuid.UUID             `json:"tamano_id"`
	ProveedorID        *uuid.UUID            `json:"proveedor_id,omitempty"`
	EmpaqueID          *uuid.UUID            `json:"empaque_id,omitempty"`
	Cantidad           int                   `json:"cantidad"`
	Cajas              int                   `json:"cajas"`
	TallosPorRamo      int                   `json:"tallos_por_ramo"`
	RamosPorCaja       int                   `json:"ramos_por_caja"`
	TallosPorCaja      int                   `json:"tallos_por_caja"`
	PrecioUnitario     decimal.Decimal       `json:"precio_unitario"`
	PorcentajeImpuesto decimal.Decimal       `json:"porcentaje_impuesto"`
	PorcentajeExencion decimal.Decimal       `json:"porcentaje_exencion"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	Impuesto           decimal.Decimal       `json:"impuesto"`
	Total              decimal.Decimal       `json:"total"`
	Surtido            []SurtidoItemResponse `json:"surtido,omitempty"`
	SurtidoIncompleto  bool                  `json:"surtido_incompleto"`
}

type PedidoResponse struct {
	ID                uuid.UUID             `json:"id"`
	Fecha             string                `json:"fecha"`
	ClienteID         *uuid.UUID            `json:"cliente_id,omitempty"`
	Terminal          *string               `json:"terminal,omitempty"`
	Agencia           *string               `json:"agencia,omitempty"`
	AWB               *string               `json:"awb,omitempty"`
	EsExportacion     bool                  `json:"es_exportacion"`
	ExcluirReporte    bool                  `json:"excluir_reporte"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	Impuesto          decimal.Decimal       `json:"impuesto"`
	MontoExento       decimal.Decimal       `json:"monto_exento"`
	Total             decimal.Decimal       `json:"total"`
	Lineas            []LineaPedidoResponse `json:"lineas"`
	LineasIncompletas int                   `json:"lineas_incompletas"`
}
