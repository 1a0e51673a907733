package agregacion

import (
	"fmt"
	"sort"
	"sync"
)

var (
	claveCliente   = Clave{"cliente", func(l Linea) string { return etiqueta(l.Cliente, SinCliente) }}
	claveProveedor = Clave{"proveedor", func(l Linea) string { return etiqueta(l.Proveedor, SinProveedor) }}
	claveTerminal  = Clave{"terminal", func(l Linea) string { return etiqueta(l.Terminal, SinTerminal) }}
	claveAgencia   = Clave{"agencia", func(l Linea) string { return etiqueta(l.Agencia, SinAgencia) }}
	claveFamilia   = Clave{"familia", func(l Linea) string { return etiqueta(l.Familia, SinFamilia) }}
	claveProducto  = Clave{"producto", Linea.ClaveProducto}
	claveSurtido   = Clave{"producto", Linea.ClaveProductoSurtido}
)

// Grouping paths.
var (
	RutaCliente   = []Clave{claveCliente, claveProducto}
	RutaFamilia   = []Clave{claveFamilia, claveProducto, claveCliente}
	RutaProveedor = []Clave{claveProveedor, claveTerminal, claveAgencia, claveCliente, claveSurtido}
	rutaMatriz    = []Clave{claveTerminal, claveAgencia, claveCliente, claveProveedor}
)

// Reporte bundles the four groupings of one line set.
type Reporte struct {
	PorCliente   *Nodo  `json:"por_cliente"`
	PorFamilia   *Nodo  `json:"por_familia"`
	PorProveedor *Nodo  `json:"por_proveedor"`
	Matriz       Matriz `json:"matriz"`
	// TotalCajas is the raw sum over the input, before any grouping.
	TotalCajas  int  `json:"total_cajas"`
	TotalLineas int  `json:"total_lineas"`
	Conciliado  bool `json:"conciliado"`
}

// Construir builds the four groupings concurrently. partes > 1 also splits
// each grouping's input across goroutines.
func Construir(lineas []Linea, partes int) *Reporte {
	r := &Reporte{TotalLineas: len(lineas)}
	for _, l := range lineas {
		r.TotalCajas += l.Cajas
	}

	var wg sync.WaitGroup
	var matriz *Nodo
	wg.Add(4)
	go func() { defer wg.Done(); r.PorCliente = AgruparParalelo(lineas, RutaCliente, partes) }()
	go func() { defer wg.Done(); r.PorFamilia = AgruparParalelo(lineas, RutaFamilia, partes) }()
	go func() { defer wg.Done(); r.PorProveedor = AgruparParalelo(lineas, RutaProveedor, partes) }()
	go func() { defer wg.Done(); matriz = AgruparParalelo(lineas, rutaMatriz, partes) }()
	wg.Wait()

	r.Matriz = matrizDesdeArbol(matriz)
	r.Conciliado = Conciliar(r) == nil
	return r
}

// Conciliar checks that every grouping accounts for exactly the input boxes.
func Conciliar(r *Reporte) error {
	totales := map[string]int{
		"por_cliente":   r.PorCliente.CajasHojas(),
		"por_familia":   r.PorFamilia.CajasHojas(),
		"por_proveedor": r.PorProveedor.CajasHojas(),
		"matriz":        r.Matriz.Total,
	}
	nombres := make([]string, 0, len(totales))
	for n := range totales {
		nombres = append(nombres, n)
	}
	sort.Strings(nombres)
	for _, n := range nombres {
		if totales[n] != r.TotalCajas {
			return fmt.Errorf("agrupacion %s suma %d cajas, entrada %d", n, totales[n], r.TotalCajas)
		}
	}
	return nil
}
