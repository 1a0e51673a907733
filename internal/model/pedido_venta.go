package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PedidoVenta is a sales order. Totals are recomputed from the lines on every
// save: Total = Subtotal + Impuesto.
type PedidoVenta struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     time.Time  `gorm:"type:date;index;not null"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	Terminal  *string
	Agencia   *string
	AWB       *string `gorm:"column:awb"`
	// EsExportacion marks orders that go on the packing list; ExcluirReporte
	// hides an order from load reports without cancelling it.
	EsExportacion  bool            `gorm:"not null;default:true"`
	ExcluirReporte bool            `gorm:"not null;default:false"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Impuesto       decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	MontoExento    decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Observaciones  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente *Cliente           `gorm:"foreignKey:ClienteID"`
	Lineas  []LineaPedidoVenta `gorm:"foreignKey:PedidoID"`
}

func (PedidoVenta) TableName() string { return "pedidos_venta" }

// LineaPedidoVenta carries the packaging constants copied at creation time so
// later Empaque edits never rewrite history.
type LineaPedidoVenta struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	FamiliaID          uuid.UUID       `gorm:"type:uuid;not null"`
	ProductoID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	VariedadID         uuid.UUID       `gorm:"type:uuid;not null"`
	TamanoID           uuid.UUID       `gorm:"type:uuid;not null"`
	ProveedorID        *uuid.UUID      `gorm:"type:uuid;index"`
	EmpaqueID          *uuid.UUID      `gorm:"type:uuid"`
	Cantidad           int             `gorm:"not null"`
	PrecioUnitario     decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CostoProveedor     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	PorcentajeImpuesto decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	PorcentajeExencion decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Cajas              int             `gorm:"not null;default:0"`
	TallosPorRamo      int             `gorm:"not null;default:0"`
	RamosPorCaja       int             `gorm:"not null;default:0"`
	TallosPorCaja      int             `gorm:"not null;default:0"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Impuesto           decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	CreatedAt          time.Time

	Familia   *Familia               `gorm:"foreignKey:FamiliaID"`
	Producto  *ProductoMaestro       `gorm:"foreignKey:ProductoID"`
	Variedad  *Variedad              `gorm:"foreignKey:VariedadID"`
	Tamano    *Tamano                `gorm:"foreignKey:TamanoID"`
	Proveedor *Proveedor             `gorm:"foreignKey:ProveedorID"`
	Empaque   *Empaque               `gorm:"foreignKey:EmpaqueID"`
	Surtido   []ConfiguracionSurtido `gorm:"foreignKey:LineaID"`
}

func (LineaPedidoVenta) TableName() string { return "lineas_pedido_venta" }

// ConfiguracionSurtido is one component of an assorted line.
type ConfiguracionSurtido struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LineaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	VariedadID uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad   int       `gorm:"not null"`
	Orden      int       `gorm:"not null;default:0"`

	Variedad *Variedad `gorm:"foreignKey:VariedadID"`
}

func (ConfiguracionSurtido) TableName() string { return "configuraciones_surtido" }
