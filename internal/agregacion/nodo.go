package agregacion

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Clave extracts one level of a grouping path from a line.
type Clave struct {
	Nombre  string
	Extraer func(Linea) string
}

// Nodo is an accumulator in a grouping tree. Every node holds the running
// totals of all lines beneath it; leaves additionally hold the distinct
// assorted compositions seen in their bucket.
type Nodo struct {
	Etiqueta string          `json:"etiqueta"`
	Nivel    string          `json:"nivel,omitempty"`
	Cajas    int             `json:"cajas"`
	Tallos   int             `json:"tallos"`
	Neto     decimal.Decimal `json:"neto"`
	Lineas   int             `json:"lineas"`
	Surtidos []string        `json:"surtidos,omitempty"`
	Hijos    []*Nodo         `json:"hijos,omitempty"`

	indice   map[string]*Nodo
	surtidos map[string]struct{}
}

const etiquetaRaiz = "Total"

func nuevoNodo(etiqueta, nivel string) *Nodo {
	return &Nodo{Etiqueta: etiqueta, Nivel: nivel, Neto: decimal.Zero}
}

// Hijo returns the child with the given label, or nil.
func (n *Nodo) Hijo(etiqueta string) *Nodo {
	if n == nil {
		return nil
	}
	for _, h := range n.Hijos {
		if h.Etiqueta == etiqueta {
			return h
		}
	}
	return nil
}

// Ruta walks down the tree following labels. Missing steps yield nil.
func (n *Nodo) Ruta(etiquetas ...string) *Nodo {
	cur := n
	for _, e := range etiquetas {
		cur = cur.Hijo(e)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// CajasHojas sums boxes over the leaves only.
func (n *Nodo) CajasHojas() int {
	if len(n.Hijos) == 0 {
		return n.Cajas
	}
	total := 0
	for _, h := range n.Hijos {
		total += h.CajasHojas()
	}
	return total
}

func (n *Nodo) hijo(etiqueta, nivel string) *Nodo {
	if n.indice == nil {
		n.indice = make(map[string]*Nodo)
	}
	h, ok := n.indice[etiqueta]
	if !ok {
		h = nuevoNodo(etiqueta, nivel)
		n.indice[etiqueta] = h
		n.Hijos = append(n.Hijos, h)
	}
	return h
}

func (n *Nodo) sumar(l Linea) {
	n.Cajas += l.Cajas
	n.Tallos += l.TotalTallos()
	n.Neto = n.Neto.Add(l.Neto)
	n.Lineas++
}

func (n *Nodo) anotarSurtido(s string) {
	if s == "" {
		return
	}
	if n.surtidos == nil {
		n.surtidos = make(map[string]struct{})
	}
	n.surtidos[s] = struct{}{}
}

func (n *Nodo) acumular(l Linea, ruta []Clave) {
	n.sumar(l)
	cur := n
	for _, c := range ruta {
		cur = cur.hijo(c.Extraer(l), c.Nombre)
		cur.sumar(l)
	}
	if len(ruta) > 0 {
		cur.anotarSurtido(l.Composicion())
	}
}

// fusionar adds o's totals into n, recursively. o must not be used afterwards.
func (n *Nodo) fusionar(o *Nodo) {
	n.Cajas += o.Cajas
	n.Tallos += o.Tallos
	n.Neto = n.Neto.Add(o.Neto)
	n.Lineas += o.Lineas
	for s := range o.surtidos {
		n.anotarSurtido(s)
	}
	for _, oh := range o.Hijos {
		n.hijo(oh.Etiqueta, oh.Nivel).fusionar(oh)
	}
}

// finalizar sorts children ordinally and materialises the composition list.
func (n *Nodo) finalizar() {
	sort.Slice(n.Hijos, func(i, j int) bool { return n.Hijos[i].Etiqueta < n.Hijos[j].Etiqueta })
	if len(n.surtidos) > 0 {
		n.Surtidos = make([]string, 0, len(n.surtidos))
		for s := range n.surtidos {
			n.Surtidos = append(n.Surtidos, s)
		}
		sort.Strings(n.Surtidos)
	}
	for _, h := range n.Hijos {
		h.finalizar()
	}
}

// Agrupar folds lineas into a tree following ruta. The root is labelled
// "Total" and carries the grand totals.
func Agrupar(lineas []Linea, ruta []Clave) *Nodo {
	raiz := nuevoNodo(etiquetaRaiz, "")
	for _, l := range lineas {
		raiz.acumular(l, ruta)
	}
	raiz.finalizar()
	return raiz
}

// AgruparParalelo splits lineas into up to partes contiguous chunks, folds
// each concurrently and merges the partial trees. The result equals
// Agrupar(lineas, ruta).
func AgruparParalelo(lineas []Linea, ruta []Clave, partes int) *Nodo {
	if partes <= 1 || len(lineas) < 2*partes {
		return Agrupar(lineas, ruta)
	}
	tam := (len(lineas) + partes - 1) / partes
	parciales := make([]*Nodo, 0, partes)
	for ini := 0; ini < len(lineas); ini += tam {
		parciales = append(parciales, nuevoNodo(etiquetaRaiz, ""))
	}

	var wg sync.WaitGroup
	for i := range parciales {
		ini := i * tam
		fin := min(ini+tam, len(lineas))
		wg.Add(1)
		go func(p *Nodo, trozo []Linea) {
			defer wg.Done()
			for _, l := range trozo {
				p.acumular(l, ruta)
			}
		}(parciales[i], lineas[ini:fin])
	}
	wg.Wait()

	raiz := parciales[0]
	for _, p := range parciales[1:] {
		raiz.fusionar(p)
	}
	raiz.finalizar()
	return raiz
}
