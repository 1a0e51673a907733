package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoEmpaque groups packagings by product presentation (e.g. "BULK", "CB").
type TipoEmpaque struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (TipoEmpaque) TableName() string { return "tipos_empaque" }

// Empaque is a physical box definition. The same box name may appear under
// several types with different constants.
// TallosPorCaja must equal TallosPorRamo * RamosPorCaja.
type Empaque struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoEmpaqueID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre        string    `gorm:"index;not null"`
	TallosPorRamo int       `gorm:"not null"`
	RamosPorCaja  int       `gorm:"not null"`
	TallosPorCaja int       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	TipoEmpaque *TipoEmpaque `gorm:"foreignKey:TipoEmpaqueID"`
}

func (Empaque) TableName() string { return "empaques" }

// ProductoEmpaque restricts the packagings valid for a product. No rows for a
// product means every packaging is allowed.
type ProductoEmpaque struct {
	ProductoID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpaqueID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ProductoEmpaque) TableName() string { return "productos_empaques" }

// ClienteEmpaque and ProveedorEmpaque follow the same wildcard-by-absence rule.
type ClienteEmpaque struct {
	ClienteID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpaqueID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ClienteEmpaque) TableName() string { return "clientes_empaques" }

type ProveedorEmpaque struct {
	ProveedorID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpaqueID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ProveedorEmpaque) TableName() string { return "proveedores_empaques" }
