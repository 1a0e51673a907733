package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductoMaestro is the concrete SKU derived from one legal
// (Familia, Variedad, Tamano) triple. The triple is unique.
type ProductoMaestro struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FamiliaID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_triple"`
	VariedadID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_triple"`
	TamanoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_triple"`
	Nombre      string    `gorm:"index;not null"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Familia  *Familia  `gorm:"foreignKey:FamiliaID"`
	Variedad *Variedad `gorm:"foreignKey:VariedadID"`
	Tamano   *Tamano   `gorm:"foreignKey:TamanoID"`
}

func (ProductoMaestro) TableName() string { return "productos_maestros" }

// ContadorCodigo holds the last sequential number handed out per code prefix.
type ContadorCodigo struct {
	Prefijo string `gorm:"primaryKey"`
	Ultimo  int    `gorm:"not null;default:0"`
}

func (ContadorCodigo) TableName() string { return "contadores_codigo" }
