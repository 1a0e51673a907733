// Package agregacion folds flattened order lines into the hierarchical
// rollups used by packing lists and load reports.
//
// All groupings come from one reducer, Agrupar, parameterised by an ordered
// path of key extractors. Reductions never touch shared state, so disjoint
// slices of input can be folded concurrently and merged (see AgruparParalelo).
package agregacion

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Labels substituted for missing dimension values. A line with a missing
// value is never dropped from a grouping.
const (
	SinCliente   = "Sin Cliente"
	SinProveedor = "Sin Proveedor"
	SinTerminal  = "Sin Terminal"
	SinAgencia   = "Sin Agencia"
	SinFamilia   = "Sin Familia"
	SinProducto  = "Sin Producto"
	SinEmpaque   = "Sin Empaque"
	SinVariedad  = "Sin Variedad"
	SinTamano    = "Sin Tamaño"
)

// ItemSurtido is one component of an assorted line.
type ItemSurtido struct {
	Cantidad int    `json:"cantidad"`
	Variedad string `json:"variedad"`
}

// Linea is an order line joined with its order's client, terminal, agency
// and AWB, ready for aggregation.
type Linea struct {
	Cliente       string          `json:"cliente"`
	Proveedor     string          `json:"proveedor"`
	Terminal      string          `json:"terminal"`
	Agencia       string          `json:"agencia"`
	AWB           string          `json:"awb"`
	Familia       string          `json:"familia"`
	Producto      string          `json:"producto"`
	Empaque       string          `json:"empaque"`
	Variedad      string          `json:"variedad"`
	Tamano        string          `json:"tamano"`
	Cajas         int             `json:"cajas"`
	TallosPorCaja int             `json:"tallos_por_caja"`
	Neto          decimal.Decimal `json:"neto"`
	Surtido       []ItemSurtido   `json:"surtido,omitempty"`
}

// TotalTallos is boxes times stems per box.
func (l Linea) TotalTallos() int { return l.Cajas * l.TallosPorCaja }

// Composicion renders the assorted sub-rows as "5x A + 3x B", or "" when the
// line is not assorted.
func (l Linea) Composicion() string {
	if len(l.Surtido) == 0 {
		return ""
	}
	partes := make([]string, 0, len(l.Surtido))
	for _, s := range l.Surtido {
		partes = append(partes, fmt.Sprintf("%dx %s", s.Cantidad, etiqueta(s.Variedad, SinVariedad)))
	}
	return strings.Join(partes, " + ")
}

// ClaveProducto identifies product + packaging + variant + size.
func (l Linea) ClaveProducto() string {
	return strings.Join([]string{
		etiqueta(l.Producto, SinProducto),
		etiqueta(l.Empaque, SinEmpaque),
		etiqueta(l.Variedad, SinVariedad),
		etiqueta(l.Tamano, SinTamano),
	}, " / ")
}

// ClaveProductoSurtido is ClaveProducto with the composition appended, for
// groupings that show composition inline.
func (l Linea) ClaveProductoSurtido() string {
	if c := l.Composicion(); c != "" {
		return l.ClaveProducto() + " [" + c + "]"
	}
	return l.ClaveProducto()
}

func etiqueta(v, sentinela string) string {
	if v = strings.TrimSpace(v); v == "" {
		return sentinela
	}
	return v
}
