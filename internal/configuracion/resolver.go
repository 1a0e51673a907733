package configuracion

import (
	"github.com/google/uuid"
)

// Opcion is a catalog entry as offered to callers.
type Opcion struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

// Par is one legal (Variedad, Tamano) combination of a family.
type Par struct {
	Variedad Opcion `json:"variedad"`
	Tamano   Opcion `json:"tamano"`
}

// Variedades returns the legal variants for a family's rules. A wildcard
// variant rule yields the whole catalog; otherwise the distinct specific ids.
// Results follow catalog order; ids absent from the catalog are dropped.
// No rules yields an empty slice.
func Variedades(reglas []Regla, catalogo []Opcion) []Opcion {
	return filtrar(catalogo, func(r Regla) Selector { return r.Variedad }, reglas)
}

// Tamanos returns the legal sizes for variedad: rules whose variant axis
// matches it (specifically or by wildcard) are considered, and among those a
// wildcard size yields the whole catalog.
func Tamanos(reglas []Regla, variedad uuid.UUID, catalogo []Opcion) []Opcion {
	aplicables := make([]Regla, 0, len(reglas))
	for _, r := range reglas {
		if r.Variedad.Coincide(variedad) {
			aplicables = append(aplicables, r)
		}
	}
	return filtrar(catalogo, func(r Regla) Selector { return r.Tamano }, aplicables)
}

// Pares expands the rules into every legal pair, variant-major in catalog order.
func Pares(reglas []Regla, variedades, tamanos []Opcion) []Par {
	var pares []Par
	for _, v := range Variedades(reglas, variedades) {
		for _, t := range Tamanos(reglas, v.ID, tamanos) {
			pares = append(pares, Par{Variedad: v, Tamano: t})
		}
	}
	return pares
}

// EsLegal reports whether the pair is covered by at least one rule.
func EsLegal(reglas []Regla, variedad, tamano uuid.UUID) bool {
	for _, r := range reglas {
		if r.Variedad.Coincide(variedad) && r.Tamano.Coincide(tamano) {
			return true
		}
	}
	return false
}

func filtrar(catalogo []Opcion, eje func(Regla) Selector, reglas []Regla) []Opcion {
	out := make([]Opcion, 0)
	if len(reglas) == 0 {
		return out
	}
	permitidos := make(map[uuid.UUID]struct{}, len(reglas))
	for _, r := range reglas {
		s := eje(r)
		if s.EsCualquiera() {
			return append(out, catalogo...)
		}
		id, _ := s.ID()
		permitidos[id] = struct{}{}
	}
	for _, o := range catalogo {
		if _, ok := permitidos[o.ID]; ok {
			out = append(out, o)
		}
	}
	return out
}
