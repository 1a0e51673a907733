package service_test

import (
	"context"
	"sort"
	"sync"

	"florexport/internal/codigo"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Catalogo ──────────────────────────────────────────────────────────────────

type stubCatalogoRepo struct {
	grupos     map[uuid.UUID]*model.Grupo
	familias   map[uuid.UUID]*model.Familia
	variedades []model.Variedad
	tamanos    []model.Tamano
	reglas     []model.ConfiguracionPermitida
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		grupos:   make(map[uuid.UUID]*model.Grupo),
		familias: make(map[uuid.UUID]*model.Familia),
	}
}

func (r *stubCatalogoRepo) CrearGrupo(_ context.Context, g *model.Grupo) error {
	g.ID = uuid.New()
	r.grupos[g.ID] = g
	return nil
}

func (r *stubCatalogoRepo) GrupoPorID(_ context.Context, id uuid.UUID) (*model.Grupo, error) {
	g, ok := r.grupos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *stubCatalogoRepo) CrearFamilia(_ context.Context, f *model.Familia) error {
	f.ID = uuid.New()
	r.familias[f.ID] = f
	return nil
}

func (r *stubCatalogoRepo) FamiliaPorID(_ context.Context, id uuid.UUID) (*model.Familia, error) {
	f, ok := r.familias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubCatalogoRepo) ListarFamilias(_ context.Context) ([]model.Familia, error) {
	out := make([]model.Familia, 0, len(r.familias))
	for _, f := range r.familias {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreCientifico < out[j].NombreCientifico })
	return out, nil
}

func (r *stubCatalogoRepo) CrearVariedad(_ context.Context, v *model.Variedad) error {
	v.ID = uuid.New()
	r.variedades = append(r.variedades, *v)
	return nil
}

func (r *stubCatalogoRepo) VariedadPorID(_ context.Context, id uuid.UUID) (*model.Variedad, error) {
	for i := range r.variedades {
		if r.variedades[i].ID == id {
			v := r.variedades[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCatalogoRepo) ListarVariedades(_ context.Context) ([]model.Variedad, error) {
	return append([]model.Variedad(nil), r.variedades...), nil
}

func (r *stubCatalogoRepo) CrearTamano(_ context.Context, t *model.Tamano) error {
	t.ID = uuid.New()
	r.tamanos = append(r.tamanos, *t)
	return nil
}

func (r *stubCatalogoRepo) TamanoPorID(_ context.Context, id uuid.UUID) (*model.Tamano, error) {
	for i := range r.tamanos {
		if r.tamanos[i].ID == id {
			t := r.tamanos[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCatalogoRepo) ListarTamanos(_ context.Context) ([]model.Tamano, error) {
	return append([]model.Tamano(nil), r.tamanos...), nil
}

func (r *stubCatalogoRepo) ReglasPorFamilia(_ context.Context, familiaID uuid.UUID) ([]model.ConfiguracionPermitida, error) {
	var out []model.ConfiguracionPermitida
	for _, rg := range r.reglas {
		if rg.FamiliaID == familiaID {
			out = append(out, rg)
		}
	}
	return out, nil
}

func (r *stubCatalogoRepo) CrearRegla(_ context.Context, rg *model.ConfiguracionPermitida) error {
	rg.ID = uuid.New()
	r.reglas = append(r.reglas, *rg)
	return nil
}

func (r *stubCatalogoRepo) ReglaPorID(_ context.Context, id uuid.UUID) (*model.ConfiguracionPermitida, error) {
	for i := range r.reglas {
		if r.reglas[i].ID == id {
			rg := r.reglas[i]
			return &rg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCatalogoRepo) EliminarRegla(_ context.Context, id uuid.UUID) error {
	for i := range r.reglas {
		if r.reglas[i].ID == id {
			r.reglas = append(r.reglas[:i], r.reglas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.CatalogoRepository = (*stubCatalogoRepo)(nil)

// ── ProductoMaestro ──────────────────────────────────────────────────────────

// stubProductoRepo enforces both unique keys (code and triple) and hands out
// numbers from a per-prefix counter seeded like the SQL upsert.
type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.ProductoMaestro
	contador  map[string]int
	// ocupados simulates codes taken outside the counter (legacy rows the
	// counter did not see), forcing a duplicate-code retry.
	ocupados map[string]bool
	// antesDeCrear runs before each insert; tests use it to race a
	// concurrent derivation.
	antesDeCrear func(p *model.ProductoMaestro)
	reservas     int
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.ProductoMaestro),
		contador:  make(map[string]int),
		ocupados:  make(map[string]bool),
	}
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoMaestro, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) ListarPorFamilia(_ context.Context, familiaID uuid.UUID) ([]model.ProductoMaestro, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ProductoMaestro
	for _, p := range r.productos {
		if p.FamiliaID == familiaID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r *stubProductoRepo) SiguienteNumeroTx(_ context.Context, _ *gorm.DB, prefijo string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservas++
	// Seeded from the highest suffix in use, as the counter upsert does.
	if _, ok := r.contador[prefijo]; !ok {
		mayor := 0
		for _, p := range r.productos {
			if n, ok := codigo.Sufijo(p.Codigo, prefijo); ok && n > mayor {
				mayor = n
			}
		}
		r.contador[prefijo] = mayor
	}
	r.contador[prefijo]++
	return r.contador[prefijo], nil
}

func (r *stubProductoRepo) CrearTx(_ context.Context, _ *gorm.DB, p *model.ProductoMaestro) error {
	if r.antesDeCrear != nil {
		r.antesDeCrear(p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ocupados[p.Codigo] {
		return gorm.ErrDuplicatedKey
	}
	for _, e := range r.productos {
		if e.Codigo == p.Codigo {
			return gorm.ErrDuplicatedKey
		}
		if e.FamiliaID == p.FamiliaID && e.VariedadID == p.VariedadID && e.TamanoID == p.TamanoID {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) ExisteTripleTx(_ context.Context, _ *gorm.DB, familiaID, variedadID, tamanoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.productos {
		if e.FamiliaID == familiaID && e.VariedadID == variedadID && e.TamanoID == tamanoID {
			return true, nil
		}
	}
	return false, nil
}

// insertar stores a product directly, bypassing the counter.
func (r *stubProductoRepo) insertar(p model.ProductoMaestro) *model.ProductoMaestro {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoMaestroRepository = (*stubProductoRepo)(nil)

// ── Empaque ──────────────────────────────────────────────────────────────────

type stubEmpaqueRepo struct {
	tipos       map[uuid.UUID]*model.TipoEmpaque
	empaques    []model.Empaque
	porProducto map[uuid.UUID][]uuid.UUID
	porCliente  map[uuid.UUID][]uuid.UUID
	porProv     map[uuid.UUID][]uuid.UUID
}

func newStubEmpaqueRepo() *stubEmpaqueRepo {
	return &stubEmpaqueRepo{
		tipos:       make(map[uuid.UUID]*model.TipoEmpaque),
		porProducto: make(map[uuid.UUID][]uuid.UUID),
		porCliente:  make(map[uuid.UUID][]uuid.UUID),
		porProv:     make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *stubEmpaqueRepo) CrearTipo(_ context.Context, t *model.TipoEmpaque) error {
	t.ID = uuid.New()
	r.tipos[t.ID] = t
	return nil
}

func (r *stubEmpaqueRepo) TipoPorID(_ context.Context, id uuid.UUID) (*model.TipoEmpaque, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubEmpaqueRepo) ListarTipos(_ context.Context) ([]model.TipoEmpaque, error) {
	out := make([]model.TipoEmpaque, 0, len(r.tipos))
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubEmpaqueRepo) Crear(_ context.Context, e *model.Empaque) error {
	e.ID = uuid.New()
	cp := *e
	cp.TipoEmpaque = r.tipos[e.TipoEmpaqueID]
	r.empaques = append(r.empaques, cp)
	return nil
}

func (r *stubEmpaqueRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empaque, error) {
	for i := range r.empaques {
		if r.empaques[i].ID == id {
			e := r.empaques[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpaqueRepo) Listar(_ context.Context) ([]model.Empaque, error) {
	return append([]model.Empaque(nil), r.empaques...), nil
}

func (r *stubEmpaqueRepo) IDsPorProducto(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return r.porProducto[id], nil
}

func (r *stubEmpaqueRepo) IDsPorCliente(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return r.porCliente[id], nil
}

func (r *stubEmpaqueRepo) IDsPorProveedor(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return r.porProv[id], nil
}

func (r *stubEmpaqueRepo) ReemplazarVinculosProducto(_ context.Context, productoID uuid.UUID, ids []uuid.UUID) error {
	r.porProducto[productoID] = ids
	return nil
}

var _ repository.EmpaqueRepository = (*stubEmpaqueRepo)(nil)

// ── Pedido ───────────────────────────────────────────────────────────────────

// stubPedidoRepo emulates the preloads the real repository performs, using
// the catalog stub for variety lookups.
type stubPedidoRepo struct {
	pedidos  map[uuid.UUID]*model.PedidoVenta
	catalogo *stubCatalogoRepo
}

func newStubPedidoRepo(catalogo *stubCatalogoRepo) *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.PedidoVenta), catalogo: catalogo}
}

func (r *stubPedidoRepo) preparar(p *model.PedidoVenta) {
	for i := range p.Lineas {
		if p.Lineas[i].ID == uuid.Nil {
			p.Lineas[i].ID = uuid.New()
		}
		p.Lineas[i].PedidoID = p.ID
		if v, err := r.catalogo.VariedadPorID(context.Background(), p.Lineas[i].VariedadID); err == nil {
			p.Lineas[i].Variedad = v
		}
	}
}

func (r *stubPedidoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.PedidoVenta) error {
	p.ID = uuid.New()
	r.preparar(p)
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PedidoVenta, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Lineas = append([]model.LineaPedidoVenta(nil), p.Lineas...)
	return &cp, nil
}

func (r *stubPedidoRepo) ReemplazarLineasTx(_ context.Context, _ *gorm.DB, p *model.PedidoVenta) error {
	if _, ok := r.pedidos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.preparar(p)
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindLinea(_ context.Context, id uuid.UUID) (*model.LineaPedidoVenta, error) {
	for _, p := range r.pedidos {
		for i := range p.Lineas {
			if p.Lineas[i].ID == id {
				l := p.Lineas[i]
				return &l, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) ReemplazarSurtidoTx(_ context.Context, _ *gorm.DB, lineaID uuid.UUID, items []model.ConfiguracionSurtido) error {
	for _, p := range r.pedidos {
		for i := range p.Lineas {
			if p.Lineas[i].ID == lineaID {
				p.Lineas[i].Surtido = items
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) ListarParaReporte(_ context.Context, f repository.FiltroReporte) ([]model.PedidoVenta, error) {
	var out []model.PedidoVenta
	for _, p := range r.pedidos {
		if p.Fecha.Before(f.Desde) || p.Fecha.After(f.Hasta) {
			continue
		}
		if f.SoloExportacion && !p.EsExportacion {
			continue
		}
		if !f.IncluirExcluidos && p.ExcluirReporte {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── Encolador ────────────────────────────────────────────────────────────────

type stubEncolador struct {
	familias []uuid.UUID
}

func (e *stubEncolador) EnqueueDerivacion(_ context.Context, familiaID uuid.UUID) error {
	e.familias = append(e.familias, familiaID)
	return nil
}

// ── Tercero ──────────────────────────────────────────────────────────────────

type stubTerceroRepo struct {
	clientes    map[uuid.UUID]*model.Cliente
	proveedores map[uuid.UUID]*model.Proveedor
	empaques    *stubEmpaqueRepo
}

func newStubTerceroRepo(empaques *stubEmpaqueRepo) *stubTerceroRepo {
	return &stubTerceroRepo{
		clientes:    make(map[uuid.UUID]*model.Cliente),
		proveedores: make(map[uuid.UUID]*model.Proveedor),
		empaques:    empaques,
	}
}

func (r *stubTerceroRepo) CrearCliente(_ context.Context, c *model.Cliente) error {
	c.ID = uuid.New()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubTerceroRepo) ClientePorID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubTerceroRepo) ListarClientes(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubTerceroRepo) CrearProveedor(_ context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubTerceroRepo) ProveedorPorID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubTerceroRepo) ListarProveedores(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubTerceroRepo) ReemplazarEmpaquesCliente(_ context.Context, id uuid.UUID, empaques []uuid.UUID) error {
	r.empaques.porCliente[id] = empaques
	return nil
}

func (r *stubTerceroRepo) ReemplazarEmpaquesProveedor(_ context.Context, id uuid.UUID, empaques []uuid.UUID) error {
	r.empaques.porProv[id] = empaques
	return nil
}

var _ repository.TerceroRepository = (*stubTerceroRepo)(nil)
