package model

import (
	"time"

	"github.com/google/uuid"
)

// Grupo is the top of the category hierarchy. Families reference it.
type Grupo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Grupo) TableName() string { return "grupos" }

// Familia is the unit at which allow-rules are declared (e.g. a flower species).
type Familia struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCientifico string    `gorm:"index;not null"`
	GrupoID          uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Grupo *Grupo `gorm:"foreignKey:GrupoID"`
}

func (Familia) TableName() string { return "familias" }

// Variedad is a global catalog entry (color, cultivar). EsSurtido marks the
// mixed/assorted pseudo-variant whose lines need a ConfiguracionSurtido.
type Variedad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	EsSurtido bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Variedad) TableName() string { return "variedades" }

// Tamano is a global catalog entry (stem length grade).
type Tamano struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tamano) TableName() string { return "tamanos" }

// ConfiguracionPermitida is a wildcard allow-rule. A nil VariedadID means any
// variant, a nil TamanoID means any size.
type ConfiguracionPermitida struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FamiliaID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	VariedadID *uuid.UUID `gorm:"type:uuid"`
	TamanoID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (ConfiguracionPermitida) TableName() string { return "configuraciones_permitidas" }
