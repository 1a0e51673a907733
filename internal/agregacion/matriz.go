package agregacion

import "sort"

// Matriz pivots boxes with rows Terminal → Agencia → Cliente and one column
// per provider. The "Sin Proveedor" column is always present.
type Matriz struct {
	Proveedores    []string       `json:"proveedores"`
	Terminales     []FilaMatriz   `json:"terminales"`
	TotalesColumna map[string]int `json:"totales_columna"`
	Total          int            `json:"total"`
}

// FilaMatriz is one row at any nesting level; Hijos holds the next level
// (agencies under a terminal, clients under an agency).
type FilaMatriz struct {
	Etiqueta string         `json:"etiqueta"`
	Celdas   map[string]int `json:"celdas"`
	Total    int            `json:"total"`
	Hijos    []FilaMatriz   `json:"hijos,omitempty"`
}

// Celda returns the boxes for proveedor, zero when absent.
func (f FilaMatriz) Celda(proveedor string) int { return f.Celdas[proveedor] }

// matrizDesdeArbol reads a Terminal/Agencia/Cliente/Proveedor tree.
func matrizDesdeArbol(raiz *Nodo) Matriz {
	m := Matriz{
		TotalesColumna: map[string]int{SinProveedor: 0},
	}
	for _, t := range raiz.Hijos {
		m.Terminales = append(m.Terminales, fila(t, 2))
	}
	for _, t := range m.Terminales {
		for p, v := range t.Celdas {
			m.TotalesColumna[p] += v
			m.Total += v
		}
	}
	m.Proveedores = make([]string, 0, len(m.TotalesColumna))
	for p := range m.TotalesColumna {
		m.Proveedores = append(m.Proveedores, p)
	}
	sort.Strings(m.Proveedores)
	return m
}

// fila converts n into a row; niveles is how many row levels remain below n
// before the provider columns.
func fila(n *Nodo, niveles int) FilaMatriz {
	f := FilaMatriz{Etiqueta: n.Etiqueta, Celdas: make(map[string]int), Total: n.Cajas}
	if niveles == 0 {
		for _, p := range n.Hijos {
			f.Celdas[p.Etiqueta] += p.Cajas
		}
		return f
	}
	for _, h := range n.Hijos {
		hf := fila(h, niveles-1)
		for p, v := range hf.Celdas {
			f.Celdas[p] += v
		}
		f.Hijos = append(f.Hijos, hf)
	}
	return f
}
