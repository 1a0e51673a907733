package repository

import (
	"context"

	"florexport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmpaqueRepository covers packaging types, packagings and the link tables
// that narrow packaging choices per product, client and provider.
type EmpaqueRepository interface {
	CrearTipo(ctx context.Context, t *model.TipoEmpaque) error
	TipoPorID(ctx context.Context, id uuid.UUID) (*model.TipoEmpaque, error)
	ListarTipos(ctx context.Context) ([]model.TipoEmpaque, error)
	Crear(ctx context.Context, e *model.Empaque) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empaque, error)
	Listar(ctx context.Context) ([]model.Empaque, error)

	IDsPorProducto(ctx context.Context, productoID uuid.UUID) ([]uuid.UUID, error)
	IDsPorCliente(ctx context.Context, clienteID uuid.UUID) ([]uuid.UUID, error)
	IDsPorProveedor(ctx context.Context, proveedorID uuid.UUID) ([]uuid.UUID, error)
	// ReemplazarVinculosProducto swaps the whole link set of a product.
	ReemplazarVinculosProducto(ctx context.Context, productoID uuid.UUID, empaques []uuid.UUID) error
}

type empaqueRepo struct{ db *gorm.DB }

func NewEmpaqueRepository(db *gorm.DB) EmpaqueRepository { return &empaqueRepo{db: db} }

func (r *empaqueRepo) CrearTipo(ctx context.Context, t *model.TipoEmpaque) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *empaqueRepo) TipoPorID(ctx context.Context, id uuid.UUID) (*model.TipoEmpaque, error) {
	var t model.TipoEmpaque
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *empaqueRepo) ListarTipos(ctx context.Context) ([]model.TipoEmpaque, error) {
	var list []model.TipoEmpaque
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *empaqueRepo) Crear(ctx context.Context, e *model.Empaque) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empaqueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empaque, error) {
	var e model.Empaque
	if err := r.db.WithContext(ctx).Preload("TipoEmpaque").First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empaqueRepo) Listar(ctx context.Context) ([]model.Empaque, error) {
	var list []model.Empaque
	err := r.db.WithContext(ctx).Preload("TipoEmpaque").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *empaqueRepo) IDsPorProducto(ctx context.Context, productoID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ProductoEmpaque{}).
		Where("producto_id = ?", productoID).Pluck("empaque_id", &ids).Error
	return ids, err
}

func (r *empaqueRepo) IDsPorCliente(ctx context.Context, clienteID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ClienteEmpaque{}).
		Where("cliente_id = ?", clienteID).Pluck("empaque_id", &ids).Error
	return ids, err
}

func (r *empaqueRepo) IDsPorProveedor(ctx context.Context, proveedorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ProveedorEmpaque{}).
		Where("proveedor_id = ?", proveedorID).Pluck("empaque_id", &ids).Error
	return ids, err
}

func (r *empaqueRepo) ReemplazarVinculosProducto(ctx context.Context, productoID uuid.UUID, empaques []uuid.UUID) error {
	vinculos := make([]model.ProductoEmpaque, 0, len(empaques))
	for _, id := range empaques {
		vinculos = append(vinculos, model.ProductoEmpaque{ProductoID: productoID, EmpaqueID: id})
	}
	return reemplazarVinculos(ctx, r.db, "producto_id = ?", productoID, &model.ProductoEmpaque{}, vinculos)
}
