package repository

import (
	"context"

	"florexport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TerceroRepository persists clients and providers and their packaging
// restrictions.
type TerceroRepository interface {
	CrearCliente(ctx context.Context, c *model.Cliente) error
	ClientePorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	ListarClientes(ctx context.Context) ([]model.Cliente, error)
	CrearProveedor(ctx context.Context, p *model.Proveedor) error
	ProveedorPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	ListarProveedores(ctx context.Context) ([]model.Proveedor, error)

	ReemplazarEmpaquesCliente(ctx context.Context, clienteID uuid.UUID, empaques []uuid.UUID) error
	ReemplazarEmpaquesProveedor(ctx context.Context, proveedorID uuid.UUID, empaques []uuid.UUID) error
}

type terceroRepo struct{ db *gorm.DB }

func NewTerceroRepository(db *gorm.DB) TerceroRepository { return &terceroRepo{db: db} }

func (r *terceroRepo) CrearCliente(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *terceroRepo) ClientePorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *terceroRepo) ListarClientes(ctx context.Context) ([]model.Cliente, error) {
	var list []model.Cliente
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *terceroRepo) CrearProveedor(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *terceroRepo) ProveedorPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *terceroRepo) ListarProveedores(ctx context.Context) ([]model.Proveedor, error) {
	var list []model.Proveedor
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *terceroRepo) ReemplazarEmpaquesCliente(ctx context.Context, clienteID uuid.UUID, empaques []uuid.UUID) error {
	vinculos := make([]model.ClienteEmpaque, 0, len(empaques))
	for _, id := range empaques {
		vinculos = append(vinculos, model.ClienteEmpaque{ClienteID: clienteID, EmpaqueID: id})
	}
	return reemplazarVinculos(ctx, r.db, "cliente_id = ?", clienteID, &model.ClienteEmpaque{}, vinculos)
}

func (r *terceroRepo) ReemplazarEmpaquesProveedor(ctx context.Context, proveedorID uuid.UUID, empaques []uuid.UUID) error {
	vinculos := make([]model.ProveedorEmpaque, 0, len(empaques))
	for _, id := range empaques {
		vinculos = append(vinculos, model.ProveedorEmpaque{ProveedorID: proveedorID, EmpaqueID: id})
	}
	return reemplazarVinculos(ctx, r.db, "proveedor_id = ?", proveedorID, &model.ProveedorEmpaque{}, vinculos)
}

// reemplazarVinculos deletes the owner's link rows and inserts nuevos in one
// transaction.
func reemplazarVinculos[T any](ctx context.Context, db *gorm.DB, where string, owner uuid.UUID, modelo *T, nuevos []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(where, owner).Delete(modelo).Error; err != nil {
			return err
		}
		if len(nuevos) == 0 {
			return nil
		}
		return tx.Create(&nuevos).Error
	})
}
