package repository

import (
	"context"

	"florexport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository covers the master-data catalog: groups, families, the
// global variant/size catalogs and the per-family allow-rules.
type CatalogoRepository interface {
	CrearGrupo(ctx context.Context, g *model.Grupo) error
	GrupoPorID(ctx context.Context, id uuid.UUID) (*model.Grupo, error)
	CrearFamilia(ctx context.Context, f *model.Familia) error
	FamiliaPorID(ctx context.Context, id uuid.UUID) (*model.Familia, error)
	ListarFamilias(ctx context.Context) ([]model.Familia, error)
	CrearVariedad(ctx context.Context, v *model.Variedad) error
	VariedadPorID(ctx context.Context, id uuid.UUID) (*model.Variedad, error)
	ListarVariedades(ctx context.Context) ([]model.Variedad, error)
	CrearTamano(ctx context.Context, t *model.Tamano) error
	TamanoPorID(ctx context.Context, id uuid.UUID) (*model.Tamano, error)
	ListarTamanos(ctx context.Context) ([]model.Tamano, error)

	ReglasPorFamilia(ctx context.Context, familiaID uuid.UUID) ([]model.ConfiguracionPermitida, error)
	CrearRegla(ctx context.Context, r *model.ConfiguracionPermitida) error
	ReglaPorID(ctx context.Context, id uuid.UUID) (*model.ConfiguracionPermitida, error)
	EliminarRegla(ctx context.Context, id uuid.UUID) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CrearGrupo(ctx context.Context, g *model.Grupo) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *catalogoRepo) GrupoPorID(ctx context.Context, id uuid.UUID) (*model.Grupo, error) {
	var g model.Grupo
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *catalogoRepo) CrearFamilia(ctx context.Context, f *model.Familia) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *catalogoRepo) FamiliaPorID(ctx context.Context, id uuid.UUID) (*model.Familia, error) {
	var f model.Familia
	if err := r.db.WithContext(ctx).Preload("Grupo").First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *catalogoRepo) ListarFamilias(ctx context.Context) ([]model.Familia, error) {
	var list []model.Familia
	err := r.db.WithContext(ctx).Preload("Grupo").Order("nombre_cientifico asc").Find(&list).Error
	return list, err
}

func (r *catalogoRepo) CrearVariedad(ctx context.Context, v *model.Variedad) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *catalogoRepo) VariedadPorID(ctx context.Context, id uuid.UUID) (*model.Variedad, error) {
	var v model.Variedad
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *catalogoRepo) ListarVariedades(ctx context.Context) ([]model.Variedad, error) {
	var list []model.Variedad
	err := r.db.WithContext(ctx).Order("nombre asc, id asc").Find(&list).Error
	return list, err
}

func (r *catalogoRepo) CrearTamano(ctx context.Context, t *model.Tamano) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *catalogoRepo) TamanoPorID(ctx context.Context, id uuid.UUID) (*model.Tamano, error) {
	var t model.Tamano
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *catalogoRepo) ListarTamanos(ctx context.Context) ([]model.Tamano, error) {
	var list []model.Tamano
	err := r.db.WithContext(ctx).Order("nombre asc, id asc").Find(&list).Error
	return list, err
}

func (r *catalogoRepo) ReglasPorFamilia(ctx context.Context, familiaID uuid.UUID) ([]model.ConfiguracionPermitida, error) {
	var list []model.ConfiguracionPermitida
	err := r.db.WithContext(ctx).Where("familia_id = ?", familiaID).Find(&list).Error
	return list, err
}

func (r *catalogoRepo) CrearRegla(ctx context.Context, c *model.ConfiguracionPermitida) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) ReglaPorID(ctx context.Context, id uuid.UUID) (*model.ConfiguracionPermitida, error) {
	var c model.ConfiguracionPermitida
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogoRepo) EliminarRegla(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ConfiguracionPermitida{}, "id = ?", id).Error
}
