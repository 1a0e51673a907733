// Package finanzas holds the per-line and per-order money math. Rates are
// percentages on a 0-100 scale. Inputs are rounded to their column scale and
// every stored amount is rounded once, so the persisted figures add up
// exactly: line total = subtotal + tax, order sums = sums of stored lines.
package finanzas

import "github.com/shopspring/decimal"

// Column scales.
const (
	EscalaPrecio = 4
	EscalaTasa   = 2
	EscalaMonto  = 4
)

var cien = decimal.NewFromInt(100)

// EntradaLinea is what a line contributes to the computation.
type EntradaLinea struct {
	Cantidad           int
	PrecioUnitario     decimal.Decimal
	PorcentajeImpuesto decimal.Decimal
	PorcentajeExencion decimal.Decimal
}

// Linea is the computed money view of one order line.
type Linea struct {
	Subtotal    decimal.Decimal
	TasaNeta    decimal.Decimal
	Impuesto    decimal.Decimal
	Total       decimal.Decimal
	MontoExento decimal.Decimal
}

// Totales aggregates an order. Total is always Subtotal + Impuesto.
// MontoExento is the tax the exemption avoided, reported apart.
type Totales struct {
	Subtotal    decimal.Decimal
	Impuesto    decimal.Decimal
	MontoExento decimal.Decimal
	Total       decimal.Decimal
}

// TasaNeta is tax minus exemption, floored at zero.
func TasaNeta(impuesto, exencion decimal.Decimal) decimal.Decimal {
	neta := impuesto.Sub(exencion)
	if neta.IsNegative() {
		return decimal.Zero
	}
	return neta
}

// Normalizar rounds the price to EscalaPrecio and both rates to EscalaTasa,
// the precision they are stored with.
func Normalizar(e EntradaLinea) EntradaLinea {
	e.PrecioUnitario = e.PrecioUnitario.Round(EscalaPrecio)
	e.PorcentajeImpuesto = e.PorcentajeImpuesto.Round(EscalaTasa)
	e.PorcentajeExencion = e.PorcentajeExencion.Round(EscalaTasa)
	return e
}

// CalcularLinea computes subtotal, net tax and total for one line. Tax and
// exempt amount are rounded to EscalaMonto; the total is built from the
// rounded parts.
func CalcularLinea(e EntradaLinea) Linea {
	e = Normalizar(e)
	subtotal := e.PrecioUnitario.Mul(decimal.NewFromInt(int64(e.Cantidad))).Round(EscalaMonto)
	tasa := TasaNeta(e.PorcentajeImpuesto, e.PorcentajeExencion)
	impuesto := subtotal.Mul(tasa).Div(cien).Round(EscalaMonto)
	return Linea{
		Subtotal:    subtotal,
		TasaNeta:    tasa,
		Impuesto:    impuesto,
		Total:       subtotal.Add(impuesto),
		MontoExento: subtotal.Mul(e.PorcentajeExencion).Div(cien).Round(EscalaMonto),
	}
}

// CalcularPedido sums the lines of an order.
func CalcularPedido(entradas []EntradaLinea) (Totales, []Linea) {
	t := Totales{
		Subtotal:    decimal.Zero,
		Impuesto:    decimal.Zero,
		MontoExento: decimal.Zero,
	}
	lineas := make([]Linea, 0, len(entradas))
	for _, e := range entradas {
		l := CalcularLinea(e)
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.Impuesto = t.Impuesto.Add(l.Impuesto)
		t.MontoExento = t.MontoExento.Add(l.MontoExento)
		lineas = append(lineas, l)
	}
	t.Total = t.Subtotal.Add(t.Impuesto)
	return t, lineas
}
