package service

import (
	"context"
	"fmt"

	"florexport/internal/configuracion"
	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
)

// EmpaqueService manages packaging definitions and resolves which of them
// may be chosen for a product, client and provider.
type EmpaqueService interface {
	CrearTipo(ctx context.Context, req dto.CrearTipoEmpaqueRequest) (dto.TipoEmpaqueResponse, error)
	ListarTipos(ctx context.Context) ([]dto.TipoEmpaqueResponse, error)
	Crear(ctx context.Context, req dto.CrearEmpaqueRequest) (dto.EmpaqueResponse, error)
	VincularProducto(ctx context.Context, productoID uuid.UUID, req dto.VincularEmpaquesRequest) error
	Opciones(ctx context.Context, productoID uuid.UUID, filter dto.OpcionesEmpaqueFilter) ([]dto.GrupoEmpaquesResponse, error)
}

type empaqueService struct {
	repo      repository.EmpaqueRepository
	productos repository.ProductoMaestroRepository
}

func NewEmpaqueService(repo repository.EmpaqueRepository, productos repository.ProductoMaestroRepository) EmpaqueService {
	return &empaqueService{repo: repo, productos: productos}
}

func mapEmpaque(e model.Empaque) dto.EmpaqueResponse {
	resp := dto.EmpaqueResponse{
		ID:            e.ID,
		TipoEmpaqueID: e.TipoEmpaqueID,
		Nombre:        e.Nombre,
		TallosPorRamo: e.TallosPorRamo,
		RamosPorCaja:  e.RamosPorCaja,
		TallosPorCaja: e.TallosPorCaja,
	}
	if e.TipoEmpaque != nil {
		resp.Tipo = e.TipoEmpaque.Nombre
	}
	return resp
}

// validarConstantes derives a zero tallosPorCaja and rejects any other value
// that disagrees with the bunch constants.
func validarConstantes(tallosPorRamo, ramosPorCaja, tallosPorCaja int) (int, error) {
	esperado := tallosPorRamo * ramosPorCaja
	if tallosPorCaja == 0 {
		return esperado, nil
	}
	if tallosPorCaja != esperado {
		return 0, fmt.Errorf("%w: %d x %d = %d, recibido %d",
			ErrEmpaqueInconsistente, tallosPorRamo, ramosPorCaja, esperado, tallosPorCaja)
	}
	return tallosPorCaja, nil
}

func (s *empaqueService) CrearTipo(ctx context.Context, req dto.CrearTipoEmpaqueRequest) (dto.TipoEmpaqueResponse, error) {
	t := &model.TipoEmpaque{Nombre: req.Nombre}
	if err := s.repo.CrearTipo(ctx, t); err != nil {
		return dto.TipoEmpaqueResponse{}, err
	}
	return dto.TipoEmpaqueResponse{ID: t.ID, Nombre: t.Nombre}, nil
}

func (s *empaqueService) ListarTipos(ctx context.Context) ([]dto.TipoEmpaqueResponse, error) {
	list, err := s.repo.ListarTipos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoEmpaqueResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TipoEmpaqueResponse{ID: t.ID, Nombre: t.Nombre})
	}
	return out, nil
}

func (s *empaqueService) Crear(ctx context.Context, req dto.CrearEmpaqueRequest) (dto.EmpaqueResponse, error) {
	tipoID, err := parseID("tipo_empaque_id", req.TipoEmpaqueID)
	if err != nil {
		return dto.EmpaqueResponse{}, err
	}
	tallosPorCaja, err := validarConstantes(req.TallosPorRamo, req.RamosPorCaja, req.TallosPorCaja)
	if err != nil {
		return dto.EmpaqueResponse{}, err
	}
	tipo, err := s.repo.TipoPorID(ctx, tipoID)
	if err != nil {
		return dto.EmpaqueResponse{}, noEncontrado(err, ErrTipoEmpaqueNoEncontrado)
	}
	e := &model.Empaque{
		TipoEmpaqueID: tipo.ID,
		Nombre:        req.Nombre,
		TallosPorRamo: req.TallosPorRamo,
		RamosPorCaja:  req.RamosPorCaja,
		TallosPorCaja: tallosPorCaja,
	}
	if err := s.repo.Crear(ctx, e); err != nil {
		return dto.EmpaqueResponse{}, err
	}
	e.TipoEmpaque = tipo
	return mapEmpaque(*e), nil
}

func (s *empaqueService) VincularProducto(ctx context.Context, productoID uuid.UUID, req dto.VincularEmpaquesRequest) error {
	if _, err := s.productos.FindByID(ctx, productoID); err != nil {
		return noEncontrado(err, ErrProductoNoEncontrado)
	}
	ids, err := empaquesExistentes(ctx, s.repo, req.EmpaqueIDs)
	if err != nil {
		return err
	}
	return s.repo.ReemplazarVinculosProducto(ctx, productoID, ids)
}

func empaquesExistentes(ctx context.Context, repo repository.EmpaqueRepository, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID("empaque_id", r)
		if err != nil {
			return nil, err
		}
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, noEncontrado(err, ErrEmpaqueNoEncontrado)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *empaqueService) Opciones(ctx context.Context, productoID uuid.UUID, filter dto.OpcionesEmpaqueFilter) ([]dto.GrupoEmpaquesResponse, error) {
	if _, err := s.productos.FindByID(ctx, productoID); err != nil {
		return nil, noEncontrado(err, ErrProductoNoEncontrado)
	}
	clienteID, err := parseIDOpcional("cliente_id", &filter.ClienteID)
	if err != nil {
		return nil, err
	}
	proveedorID, err := parseIDOpcional("proveedor_id", &filter.ProveedorID)
	if err != nil {
		return nil, err
	}
	grupos, err := opcionesEmpaque(ctx, s.repo, productoID, clienteID, proveedorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GrupoEmpaquesResponse, 0, len(grupos))
	for _, g := range grupos {
		resp := dto.GrupoEmpaquesResponse{TipoEmpaqueID: g.TipoEmpaqueID, Tipo: g.Tipo, Empaques: make([]dto.EmpaqueResponse, 0, len(g.Empaques))}
		for _, e := range g.Empaques {
			resp.Empaques = append(resp.Empaques, mapEmpaque(e))
		}
		out = append(out, resp)
	}
	return out, nil
}

// opcionesEmpaque intersects the product, client and provider link sets.
// A party without links does not restrict.
func opcionesEmpaque(ctx context.Context, repo repository.EmpaqueRepository, productoID uuid.UUID, clienteID, proveedorID *uuid.UUID) ([]configuracion.GrupoEmpaques, error) {
	todos, err := repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	porProducto, err := repo.IDsPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	restricciones := [][]uuid.UUID{porProducto}
	if clienteID != nil {
		ids, err := repo.IDsPorCliente(ctx, *clienteID)
		if err != nil {
			return nil, err
		}
		restricciones = append(restricciones, ids)
	}
	if proveedorID != nil {
		ids, err := repo.IDsPorProveedor(ctx, *proveedorID)
		if err != nil {
			return nil, err
		}
		restricciones = append(restricciones, ids)
	}
	return configuracion.OpcionesEmpaque(todos, restricciones...), nil
}
