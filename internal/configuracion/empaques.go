package configuracion

import (
	"sort"

	"github.com/google/uuid"

	"florexport/internal/model"
)

// GrupoEmpaques lists the packagings of one TipoEmpaque.
type GrupoEmpaques struct {
	TipoEmpaqueID uuid.UUID       `json:"tipo_empaque_id"`
	Tipo          string          `json:"tipo"`
	Empaques      []model.Empaque `json:"empaques"`
}

// OpcionesEmpaque filters todos by each restriction set and groups the result
// by packaging type. An empty restriction set allows every packaging, so a
// product, client or provider without links does not narrow the choice.
// Groups are ordered by type name, packagings by name.
func OpcionesEmpaque(todos []model.Empaque, restricciones ...[]uuid.UUID) []GrupoEmpaques {
	sets := make([]map[uuid.UUID]struct{}, 0, len(restricciones))
	for _, r := range restricciones {
		if len(r) == 0 {
			continue
		}
		s := make(map[uuid.UUID]struct{}, len(r))
		for _, id := range r {
			s[id] = struct{}{}
		}
		sets = append(sets, s)
	}

	grupos := make(map[uuid.UUID]*GrupoEmpaques)
	for _, e := range todos {
		if !permitido(e.ID, sets) {
			continue
		}
		g, ok := grupos[e.TipoEmpaqueID]
		if !ok {
			g = &GrupoEmpaques{TipoEmpaqueID: e.TipoEmpaqueID}
			if e.TipoEmpaque != nil {
				g.Tipo = e.TipoEmpaque.Nombre
			}
			grupos[e.TipoEmpaqueID] = g
		}
		g.Empaques = append(g.Empaques, e)
	}

	out := make([]GrupoEmpaques, 0, len(grupos))
	for _, g := range grupos {
		sort.SliceStable(g.Empaques, func(i, j int) bool {
			if g.Empaques[i].Nombre != g.Empaques[j].Nombre {
				return g.Empaques[i].Nombre < g.Empaques[j].Nombre
			}
			return g.Empaques[i].ID.String() < g.Empaques[j].ID.String()
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tipo != out[j].Tipo {
			return out[i].Tipo < out[j].Tipo
		}
		return out[i].TipoEmpaqueID.String() < out[j].TipoEmpaqueID.String()
	})
	return out
}

func permitido(id uuid.UUID, sets []map[uuid.UUID]struct{}) bool {
	for _, s := range sets {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}
