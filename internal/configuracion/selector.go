// Package configuracion resolves a family's allow-rules into the concrete
// set of legal (Variedad, Tamano) pairs, and packaging choices into the
// packagings a product may ship in.
//
// Every function here is pure: output depends only on the arguments, never on
// the order in which rules were stored.
package configuracion

import (
	"github.com/google/uuid"

	"florexport/internal/model"
)

// Selector is one axis of an allow-rule: either a specific catalog entry or
// the wildcard that matches the whole catalog.
type Selector struct {
	id         uuid.UUID
	cualquiera bool
}

// Cualquiera returns the wildcard selector.
func Cualquiera() Selector { return Selector{cualquiera: true} }

// Especifico returns a selector matching exactly id.
func Especifico(id uuid.UUID) Selector { return Selector{id: id} }

// SelectorDesde maps a nullable foreign key: nil is the wildcard.
func SelectorDesde(id *uuid.UUID) Selector {
	if id == nil {
		return Cualquiera()
	}
	return Especifico(*id)
}

func (s Selector) EsCualquiera() bool { return s.cualquiera }

// ID returns the specific id, or false for the wildcard.
func (s Selector) ID() (uuid.UUID, bool) {
	if s.cualquiera {
		return uuid.Nil, false
	}
	return s.id, true
}

// Coincide reports whether id is matched by s.
func (s Selector) Coincide(id uuid.UUID) bool {
	return s.cualquiera || s.id == id
}

// Puntero is the inverse of SelectorDesde, used when persisting.
func (s Selector) Puntero() *uuid.UUID {
	if s.cualquiera {
		return nil
	}
	id := s.id
	return &id
}

func (s Selector) String() string {
	if s.cualquiera {
		return "*"
	}
	return s.id.String()
}

// Regla is a resolved allow-rule for one family.
type Regla struct {
	Variedad Selector
	Tamano   Selector
}

// ReglasDesdeModelo converts stored rows into rules.
func ReglasDesdeModelo(rows []model.ConfiguracionPermitida) []Regla {
	reglas := make([]Regla, 0, len(rows))
	for _, r := range rows {
		reglas = append(reglas, Regla{
			Variedad: SelectorDesde(r.VariedadID),
			Tamano:   SelectorDesde(r.TamanoID),
		})
	}
	return reglas
}
