package repository

import (
	"context"

	"florexport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoMaestroRepository persists derived master products. The *Tx
// methods run on the caller's transaction.
type ProductoMaestroRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoMaestro, error)
	ListarPorFamilia(ctx context.Context, familiaID uuid.UUID) ([]model.ProductoMaestro, error)

	// SiguienteNumeroTx atomically reserves the next sequence number for
	// prefijo. The counter row stays locked until tx ends, so concurrent
	// derivations sharing a prefix serialize instead of colliding.
	SiguienteNumeroTx(ctx context.Context, tx *gorm.DB, prefijo string) (int, error)
	// CrearTx inserts p under a savepoint so a unique violation leaves tx usable.
	CrearTx(ctx context.Context, tx *gorm.DB, p *model.ProductoMaestro) error
	ExisteTripleTx(ctx context.Context, tx *gorm.DB, familiaID, variedadID, tamanoID uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type productoMaestroRepo struct{ db *gorm.DB }

func NewProductoMaestroRepository(db *gorm.DB) ProductoMaestroRepository {
	return &productoMaestroRepo{db: db}
}

func (r *productoMaestroRepo) DB() *gorm.DB { return r.db }

func (r *productoMaestroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoMaestro, error) {
	var p model.ProductoMaestro
	err := r.db.WithContext(ctx).Preload("Variedad").Preload("Tamano").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoMaestroRepo) ListarPorFamilia(ctx context.Context, familiaID uuid.UUID) ([]model.ProductoMaestro, error) {
	var list []model.ProductoMaestro
	err := r.db.WithContext(ctx).
		Preload("Variedad").Preload("Tamano").
		Where("familia_id = ?", familiaID).
		Order("codigo asc").
		Find(&list).Error
	return list, err
}

// The first reservation for a prefix seeds the counter from the highest
// numeric suffix already in use, so codes created before the counter existed
// are never reissued.
const sqlSiguienteNumero = `
INSERT INTO contadores_codigo (prefijo, ultimo)
VALUES (@prefijo, COALESCE((
    SELECT MAX(CAST(SUBSTRING(codigo FROM CHAR_LENGTH(@prefijo) + 2) AS INTEGER))
    FROM productos_maestros
    WHERE STARTS_WITH(codigo, @prefijo || '-')
      AND SUBSTRING(codigo FROM CHAR_LENGTH(@prefijo) + 2) ~ '^[0-9]+$'
), 0) + 1)
ON CONFLICT (prefijo) DO UPDATE SET ultimo = contadores_codigo.ultimo + 1
RETURNING ultimo`

func (r *productoMaestroRepo) SiguienteNumeroTx(ctx context.Context, tx *gorm.DB, prefijo string) (int, error) {
	var n int
	err := tx.WithContext(ctx).
		Raw(sqlSiguienteNumero, map[string]interface{}{"prefijo": prefijo}).
		Scan(&n).Error
	return n, err
}

func (r *productoMaestroRepo) CrearTx(ctx context.Context, tx *gorm.DB, p *model.ProductoMaestro) error {
	return tx.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return sp.Create(p).Error
	})
}

func (r *productoMaestroRepo) ExisteTripleTx(ctx context.Context, tx *gorm.DB, familiaID, variedadID, tamanoID uuid.UUID) (bool, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&model.ProductoMaestro{}).
		Where("familia_id = ? AND variedad_id = ? AND tamano_id = ?", familiaID, variedadID, tamanoID).
		Count(&n).Error
	return n > 0, err
}
