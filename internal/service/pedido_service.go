package service

import (
	"context"
	"fmt"
	"time"

	"florexport/internal/dto"
	"florexport/internal/finanzas"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PedidoService creates and edits sales orders. Every save recomputes the
// financial totals from the lines; stored totals are never trusted.
type PedidoService interface {
	Crear(ctx context.Context, req dto.GuardarPedidoRequest) (*dto.PedidoResponse, error)
	// Actualizar replaces the header and the whole line set in one transaction.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	ReemplazarSurtido(ctx context.Context, lineaID uuid.UUID, req dto.ReemplazarSurtidoRequest) ([]dto.SurtidoItemResponse, error)
}

type pedidoService struct {
	pedidos   repository.PedidoRepository
	productos repository.ProductoMaestroRepository
	empaques  repository.EmpaqueRepository
	catalogo  repository.CatalogoRepository
	rdb       *redis.Client
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	productos repository.ProductoMaestroRepository,
	empaques repository.EmpaqueRepository,
	catalogo repository.CatalogoRepository,
	rdb *redis.Client,
) PedidoService {
	return &pedidoService{pedidos: pedidos, productos: productos, empaques: empaques, catalogo: catalogo, rdb: rdb}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.GuardarPedidoRequest) (*dto.PedidoResponse, error) {
	p := &model.PedidoVenta{}
	if err := s.armar(ctx, p, req); err != nil {
		return nil, err
	}
	err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.pedidos.CreateTx(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	invalidarReportes(ctx, s.rdb)
	return s.Obtener(ctx, p.ID)
}

func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPedidoRequest) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, ErrPedidoNoEncontrado)
	}
	p.Cliente = nil
	p.Lineas = nil
	if err := s.armar(ctx, p, req); err != nil {
		return nil, err
	}
	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.pedidos.ReemplazarLineasTx(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	invalidarReportes(ctx, s.rdb)
	return s.Obtener(ctx, p.ID)
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, ErrPedidoNoEncontrado)
	}
	resp := mapPedido(*p)
	return &resp, nil
}

func (s *pedidoService) ReemplazarSurtido(ctx context.Context, lineaID uuid.UUID, req dto.ReemplazarSurtidoRequest) ([]dto.SurtidoItemResponse, error) {
	linea, err := s.pedidos.FindLinea(ctx, lineaID)
	if err != nil {
		return nil, noEncontrado(err, ErrLineaNoEncontrada)
	}
	items, err := s.armarSurtido(ctx, linea.Variedad, req.Items)
	if err != nil {
		return nil, err
	}
	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.pedidos.ReemplazarSurtidoTx(ctx, tx, lineaID, items)
	})
	if err != nil {
		return nil, err
	}
	invalidarReportes(ctx, s.rdb)
	return mapSurtido(items), nil
}

// ── armar ────────────────────────────────────────────────────────────────────
// Copies the request onto p and rebuilds p.Lineas:
//   1. Resolve each product; family, variety and size come from it
//   2. Check the packaging is allowed, copy its constants onto the line
//   3. Attach assorted components (only on assorted varieties)
//   4. Recompute line and order totals

func (s *pedidoService) armar(ctx context.Context, p *model.PedidoVenta, req dto.GuardarPedidoRequest) error {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return fmt.Errorf("%w: fecha: %v", ErrEntradaInvalida, err)
	}
	clienteID, err := parseIDOpcional("cliente_id", req.ClienteID)
	if err != nil {
		return err
	}
	p.Fecha = fecha
	p.ClienteID = clienteID
	p.Terminal = req.Terminal
	p.Agencia = req.Agencia
	p.AWB = req.AWB
	p.EsExportacion = true
	if req.EsExportacion != nil {
		p.EsExportacion = *req.EsExportacion
	}
	p.ExcluirReporte = req.ExcluirReporte
	p.Observaciones = req.Observaciones

	lineas := make([]model.LineaPedidoVenta, 0, len(req.Lineas))
	entradas := make([]finanzas.EntradaLinea, 0, len(req.Lineas))
	for i, lr := range req.Lineas {
		l, err := s.armarLinea(ctx, clienteID, lr)
		if err != nil {
			return fmt.Errorf("línea %d: %w", i+1, err)
		}
		lineas = append(lineas, l)
		entradas = append(entradas, finanzas.EntradaLinea{
			Cantidad:           l.Cantidad,
			PrecioUnitario:     l.PrecioUnitario,
			PorcentajeImpuesto: l.PorcentajeImpuesto,
			PorcentajeExencion: l.PorcentajeExencion,
		})
	}

	totales, calculadas := finanzas.CalcularPedido(entradas)
	for i := range lineas {
		lineas[i].Subtotal = calculadas[i].Subtotal
		lineas[i].Impuesto = calculadas[i].Impuesto
		lineas[i].Total = calculadas[i].Total
	}
	p.Subtotal = totales.Subtotal
	p.Impuesto = totales.Impuesto
	p.MontoExento = totales.MontoExento
	p.Total = totales.Total
	p.Lineas = lineas
	return nil
}

func (s *pedidoService) armarLinea(ctx context.Context, clienteID *uuid.UUID, lr dto.LineaPedidoRequest) (model.LineaPedidoVenta, error) {
	productoID, err := parseID("producto_id", lr.ProductoID)
	if err != nil {
		return model.LineaPedidoVenta{}, err
	}
	prod, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return model.LineaPedidoVenta{}, noEncontrado(err, ErrProductoNoEncontrado)
	}
	proveedorID, err := parseIDOpcional("proveedor_id", lr.ProveedorID)
	if err != nil {
		return model.LineaPedidoVenta{}, err
	}
	empaqueID, err := parseIDOpcional("empaque_id", lr.EmpaqueID)
	if err != nil {
		return model.LineaPedidoVenta{}, err
	}

	l := model.LineaPedidoVenta{
		FamiliaID:      prod.FamiliaID,
		ProductoID:     prod.ID,
		VariedadID:     prod.VariedadID,
		TamanoID:       prod.TamanoID,
		ProveedorID:    proveedorID,
		EmpaqueID:      empaqueID,
		Cantidad:       lr.Cantidad,
		Cajas:          lr.Cajas,
		CostoProveedor: lr.CostoProveedor.Round(finanzas.EscalaPrecio),
	}
	// Stored at column scale so the rates on the line match the tax computed from them.
	entrada := finanzas.Normalizar(finanzas.EntradaLinea{
		PrecioUnitario:     lr.PrecioUnitario,
		PorcentajeImpuesto: lr.PorcentajeImpuesto,
		PorcentajeExencion: lr.PorcentajeExencion,
	})
	l.PrecioUnitario = entrada.PrecioUnitario
	l.PorcentajeImpuesto = entrada.PorcentajeImpuesto
	l.PorcentajeExencion = entrada.PorcentajeExencion

	if empaqueID != nil {
		e, err := s.empaques.FindByID(ctx, *empaqueID)
		if err != nil {
			return model.LineaPedidoVenta{}, noEncontrado(err, ErrEmpaqueNoEncontrado)
		}
		ok, err := s.empaquePermitido(ctx, prod.ID, clienteID, proveedorID, e.ID)
		if err != nil {
			return model.LineaPedidoVenta{}, err
		}
		if !ok {
			return model.LineaPedidoVenta{}, ErrEmpaqueNoPermitido
		}
		l.TallosPorRamo = e.TallosPorRamo
		l.RamosPorCaja = e.RamosPorCaja
		l.TallosPorCaja = e.TallosPorCaja
	}

	l.Surtido, err = s.armarSurtido(ctx, prod.Variedad, lr.Surtido)
	if err != nil {
		return model.LineaPedidoVenta{}, err
	}
	return l, nil
}

func (s *pedidoService) empaquePermitido(ctx context.Context, productoID uuid.UUID, clienteID, proveedorID *uuid.UUID, empaqueID uuid.UUID) (bool, error) {
	grupos, err := opcionesEmpaque(ctx, s.empaques, productoID, clienteID, proveedorID)
	if err != nil {
		return false, err
	}
	for _, g := range grupos {
		for _, e := range g.Empaques {
			if e.ID == empaqueID {
				return true, nil
			}
		}
	}
	return false, nil
}

// armarSurtido keeps the request order as the display order.
func (s *pedidoService) armarSurtido(ctx context.Context, variedad *model.Variedad, items []dto.SurtidoItemRequest) ([]model.ConfiguracionSurtido, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if variedad == nil || !variedad.EsSurtido {
		return nil, ErrSurtidoNoPermitido
	}
	out := make([]model.ConfiguracionSurtido, 0, len(items))
	for i, it := range items {
		id, err := parseID("variedad_id", it.VariedadID)
		if err != nil {
			return nil, err
		}
		v, err := s.catalogo.VariedadPorID(ctx, id)
		if err != nil {
			return nil, noEncontrado(err, ErrVariedadNoEncontrada)
		}
		out = append(out, model.ConfiguracionSurtido{VariedadID: v.ID, Cantidad: it.Cantidad, Orden: i, Variedad: v})
	}
	return out, nil
}

func mapSurtido(items []model.ConfiguracionSurtido) []dto.SurtidoItemResponse {
	out := make([]dto.SurtidoItemResponse, 0, len(items))
	for _, it := range items {
		r := dto.SurtidoItemResponse{VariedadID: it.VariedadID, Cantidad: it.Cantidad}
		if it.Variedad != nil {
			r.Variedad = it.Variedad.Nombre
		}
		out = append(out, r)
	}
	return out
}

// surtidoIncompleto flags an assorted line nobody has broken down yet.
func surtidoIncompleto(l model.LineaPedidoVenta) bool {
	return l.Variedad != nil && l.Variedad.EsSurtido && len(l.Surtido) == 0
}

func mapPedido(p model.PedidoVenta) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:             p.ID,
		Fecha:          p.Fecha.Format("2006-01-02"),
		ClienteID:      p.ClienteID,
		Terminal:       p.Terminal,
		Agencia:        p.Agencia,
		AWB:            p.AWB,
		EsExportacion:  p.EsExportacion,
		ExcluirReporte: p.ExcluirReporte,
		Subtotal:       p.Subtotal,
		Impuesto:       p.Impuesto,
		MontoExento:    p.MontoExento,
		Total:          p.Total,
		Lineas:         make([]dto.LineaPedidoResponse, 0, len(p.Lineas)),
	}
	for _, l := range p.Lineas {
		incompleto := surtidoIncompleto(l)
		if incompleto {
			resp.LineasIncompletas++
		}
		resp.Lineas = append(resp.Lineas, dto.LineaPedidoResponse{
			ID:                 l.ID,
			ProductoID:         l.ProductoID,
			FamiliaID:          l.FamiliaID,
			VariedadID:         l.VariedadID,
			TamanoID:           l.TamanoID,
			ProveedorID:        l.ProveedorID,
			EmpaqueID:          l.EmpaqueID,
			Cantidad:           l.Cantidad,
			Cajas:              l.Cajas,
			TallosPorRamo:      l.TallosPorRamo,
			RamosPorCaja:       l.RamosPorCaja,
			TallosPorCaja:      l.TallosPorCaja,
			PrecioUnitario:     l.PrecioUnitario,
			PorcentajeImpuesto: l.PorcentajeImpuesto,
			PorcentajeExencion: l.PorcentajeExencion,
			Subtotal:           l.Subtotal,
			Impuesto:           l.Impuesto,
			Total:              l.Total,
			Surtido:            mapSurtido(l.Surtido),
			SurtidoIncompleto:  incompleto,
		})
	}
	return resp
}
