package service

import (
	"context"

	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
)

// TerceroService manages clients and providers. Their packaging links narrow
// the choices offered on an order line.
type TerceroService interface {
	CrearCliente(ctx context.Context, req dto.CrearTerceroRequest) (dto.TerceroResponse, error)
	ListarClientes(ctx context.Context) ([]dto.TerceroResponse, error)
	CrearProveedor(ctx context.Context, req dto.CrearTerceroRequest) (dto.TerceroResponse, error)
	ListarProveedores(ctx context.Context) ([]dto.TerceroResponse, error)
	VincularEmpaquesCliente(ctx context.Context, clienteID uuid.UUID, req dto.VincularEmpaquesRequest) error
	VincularEmpaquesProveedor(ctx context.Context, proveedorID uuid.UUID, req dto.VincularEmpaquesRequest) error
}

type terceroService struct {
	repo     repository.TerceroRepository
	empaques repository.EmpaqueRepository
}

func NewTerceroService(repo repository.TerceroRepository, empaques repository.EmpaqueRepository) TerceroService {
	return &terceroService{repo: repo, empaques: empaques}
}

func (s *terceroService) CrearCliente(ctx context.Context, req dto.CrearTerceroRequest) (dto.TerceroResponse, error) {
	c := &model.Cliente{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CrearCliente(ctx, c); err != nil {
		return dto.TerceroResponse{}, err
	}
	return dto.TerceroResponse{ID: c.ID, Nombre: c.Nombre, Activo: c.Activo}, nil
}

func (s *terceroService) ListarClientes(ctx context.Context) ([]dto.TerceroResponse, error) {
	list, err := s.repo.ListarClientes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TerceroResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.TerceroResponse{ID: c.ID, Nombre: c.Nombre, Activo: c.Activo})
	}
	return out, nil
}

func (s *terceroService) CrearProveedor(ctx context.Context, req dto.CrearTerceroRequest) (dto.TerceroResponse, error) {
	p := &model.Proveedor{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CrearProveedor(ctx, p); err != nil {
		return dto.TerceroResponse{}, err
	}
	return dto.TerceroResponse{ID: p.ID, Nombre: p.Nombre, Activo: p.Activo}, nil
}

func (s *terceroService) ListarProveedores(ctx context.Context) ([]dto.TerceroResponse, error) {
	list, err := s.repo.ListarProveedores(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TerceroResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.TerceroResponse{ID: p.ID, Nombre: p.Nombre, Activo: p.Activo})
	}
	return out, nil
}

func (s *terceroService) VincularEmpaquesCliente(ctx context.Context, clienteID uuid.UUID, req dto.VincularEmpaquesRequest) error {
	if _, err := s.repo.ClientePorID(ctx, clienteID); err != nil {
		return noEncontrado(err, ErrClienteNoEncontrado)
	}
	ids, err := empaquesExistentes(ctx, s.empaques, req.EmpaqueIDs)
	if err != nil {
		return err
	}
	return s.repo.ReemplazarEmpaquesCliente(ctx, clienteID, ids)
}

func (s *terceroService) VincularEmpaquesProveedor(ctx context.Context, proveedorID uuid.UUID, req dto.VincularEmpaquesRequest) error {
	if _, err := s.repo.ProveedorPorID(ctx, proveedorID); err != nil {
		return noEncontrado(err, ErrProveedorNoEncontrado)
	}
	ids, err := empaquesExistentes(ctx, s.empaques, req.EmpaqueIDs)
	if err != nil {
		return err
	}
	return s.repo.ReemplazarEmpaquesProveedor(ctx, proveedorID, ids)
}
