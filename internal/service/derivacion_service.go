package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"florexport/internal/codigo"
	"florexport/internal/configuracion"
	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Encolador schedules a background derivation for one family.
// Implemented by *worker.Dispatcher.
type Encolador interface {
	EnqueueDerivacion(ctx context.Context, familiaID uuid.UUID) error
}

// DerivacionService expands a family's allow-rules into master products.
type DerivacionService interface {
	// Derivar creates the missing product of every legal (variedad, tamano)
	// pair. Already derived pairs are counted as omitted, so repeated calls
	// converge to the same row set.
	Derivar(ctx context.Context, familiaID uuid.UUID) (*dto.DerivacionResponse, error)
	// DerivarTodas enqueues one derivation job per family.
	DerivarTodas(ctx context.Context) (*dto.DerivacionMasivaResponse, error)
	ListarProductos(ctx context.Context, familiaID uuid.UUID) ([]dto.ProductoMaestroResponse, error)
	// Obsoletos lists products whose pair is no longer legal under the
	// current rules. They stay valid; this is a read-only report.
	Obsoletos(ctx context.Context, familiaID uuid.UUID) ([]dto.ProductoMaestroResponse, error)
}

type derivacionService struct {
	catalogo      repository.CatalogoRepository
	productos     repository.ProductoMaestroRepository
	cola          Encolador
	maxReintentos int
}

func NewDerivacionService(
	catalogo repository.CatalogoRepository,
	productos repository.ProductoMaestroRepository,
	cola Encolador,
	maxReintentos int,
) DerivacionService {
	if maxReintentos < 1 {
		maxReintentos = 1
	}
	return &derivacionService{catalogo: catalogo, productos: productos, cola: cola, maxReintentos: maxReintentos}
}

func mapProducto(p model.ProductoMaestro) dto.ProductoMaestroResponse {
	resp := dto.ProductoMaestroResponse{
		ID:          p.ID,
		FamiliaID:   p.FamiliaID,
		VariedadID:  p.VariedadID,
		TamanoID:    p.TamanoID,
		Nombre:      p.Nombre,
		Codigo:      p.Codigo,
		Descripcion: p.Descripcion,
	}
	if p.Variedad != nil {
		resp.Variedad = p.Variedad.Nombre
	}
	if p.Tamano != nil {
		resp.Tamano = p.Tamano.Nombre
	}
	return resp
}

func descripcionProducto(familia string, par configuracion.Par) string {
	return fmt.Sprintf("%s, variedad %s, tamaño %s", familia, par.Variedad.Nombre, par.Tamano.Nombre)
}

type triple struct{ variedad, tamano uuid.UUID }

// ── Derivar ──────────────────────────────────────────────────────────────────
//  1. Resolve legal pairs from the current rules
//  2. Skip pairs that already have a product
//  3. Per missing pair, one transaction: reserve number, insert product
//  4. A code collision retries with a fresh number, a triple collision
//     (concurrent derive of the same family) counts as omitted

func (s *derivacionService) Derivar(ctx context.Context, familiaID uuid.UUID) (*dto.DerivacionResponse, error) {
	familia, err := s.catalogo.FamiliaPorID(ctx, familiaID)
	if err != nil {
		return nil, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	prefijo := codigo.Prefijo(familia.NombreCientifico)
	if prefijo == "" {
		return nil, fmt.Errorf("%w: familia %s sin nombre para el prefijo", ErrEntradaInvalida, familiaID)
	}
	pares, err := s.paresLegales(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	existentes, err := s.productos.ListarPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	hechos := make(map[triple]struct{}, len(existentes))
	for _, p := range existentes {
		hechos[triple{p.VariedadID, p.TamanoID}] = struct{}{}
	}

	resp := &dto.DerivacionResponse{FamiliaID: familiaID, Productos: []dto.ProductoMaestroResponse{}}
	for _, par := range pares {
		if _, ok := hechos[triple{par.Variedad.ID, par.Tamano.ID}]; ok {
			resp.Omitidos++
			continue
		}
		p, err := s.crearProducto(ctx, familia, prefijo, par)
		if err != nil {
			return nil, fmt.Errorf("derivar %s/%s: %w", par.Variedad.Nombre, par.Tamano.Nombre, err)
		}
		if p == nil {
			resp.Omitidos++
			continue
		}
		resp.Creados++
		resp.Productos = append(resp.Productos, mapProducto(*p))
	}

	log.Info().
		Str("familia_id", familiaID.String()).
		Str("prefijo", prefijo).
		Int("creados", resp.Creados).
		Int("omitidos", resp.Omitidos).
		Msg("derivación completada")
	return resp, nil
}

// crearProducto returns nil, nil when another derivation created the same
// triple first.
func (s *derivacionService) crearProducto(ctx context.Context, familia *model.Familia, prefijo string, par configuracion.Par) (*model.ProductoMaestro, error) {
	var creado *model.ProductoMaestro
	err := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		for intento := 1; intento <= s.maxReintentos; intento++ {
			n, err := s.productos.SiguienteNumeroTx(ctx, tx, prefijo)
			if err != nil {
				return err
			}
			p := &model.ProductoMaestro{
				FamiliaID:   familia.ID,
				VariedadID:  par.Variedad.ID,
				TamanoID:    par.Tamano.ID,
				Nombre:      familia.NombreCientifico,
				Codigo:      codigo.Formatear(prefijo, n),
				Descripcion: descripcionProducto(familia.NombreCientifico, par),
			}
			err = s.productos.CrearTx(ctx, tx, p)
			if err == nil {
				p.Variedad = &model.Variedad{ID: par.Variedad.ID, Nombre: par.Variedad.Nombre}
				p.Tamano = &model.Tamano{ID: par.Tamano.ID, Nombre: par.Tamano.Nombre}
				creado = p
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			existe, err := s.productos.ExisteTripleTx(ctx, tx, familia.ID, par.Variedad.ID, par.Tamano.ID)
			if err != nil {
				return err
			}
			if existe {
				return nil
			}
			log.Warn().Str("codigo", p.Codigo).Int("intento", intento).Msg("código duplicado, reintentando")
		}
		return ErrConflictoCodigo
	})
	if err != nil {
		return nil, err
	}
	return creado, nil
}

func (s *derivacionService) paresLegales(ctx context.Context, familiaID uuid.UUID) ([]configuracion.Par, error) {
	rows, err := s.catalogo.ReglasPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	variedades, err := variedadesCatalogo(ctx, s.catalogo)
	if err != nil {
		return nil, err
	}
	tamanos, err := tamanosCatalogo(ctx, s.catalogo)
	if err != nil {
		return nil, err
	}
	return configuracion.Pares(configuracion.ReglasDesdeModelo(rows), variedades, tamanos), nil
}

func (s *derivacionService) DerivarTodas(ctx context.Context) (*dto.DerivacionMasivaResponse, error) {
	familias, err := s.catalogo.ListarFamilias(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DerivacionMasivaResponse{}
	for _, f := range familias {
		if err := s.cola.EnqueueDerivacion(ctx, f.ID); err != nil {
			return resp, fmt.Errorf("encolar familia %s: %w", f.ID, err)
		}
		resp.Encoladas++
	}
	return resp, nil
}

func (s *derivacionService) ListarProductos(ctx context.Context, familiaID uuid.UUID) ([]dto.ProductoMaestroResponse, error) {
	if _, err := s.catalogo.FamiliaPorID(ctx, familiaID); err != nil {
		return nil, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	list, err := s.productos.ListarPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	// Text order puts ROS-1000 before ROS-999 once a prefix passes three digits.
	sort.SliceStable(list, func(i, j int) bool { return codigo.Comparar(list[i].Codigo, list[j].Codigo) < 0 })
	out := make([]dto.ProductoMaestroResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapProducto(p))
	}
	return out, nil
}

func (s *derivacionService) Obsoletos(ctx context.Context, familiaID uuid.UUID) ([]dto.ProductoMaestroResponse, error) {
	if _, err := s.catalogo.FamiliaPorID(ctx, familiaID); err != nil {
		return nil, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	rows, err := s.catalogo.ReglasPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	reglas := configuracion.ReglasDesdeModelo(rows)
	list, err := s.productos.ListarPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	out := []dto.ProductoMaestroResponse{}
	for _, p := range list {
		if !configuracion.EsLegal(reglas, p.VariedadID, p.TamanoID) {
			out = append(out, mapProducto(p))
		}
	}
	return out, nil
}
