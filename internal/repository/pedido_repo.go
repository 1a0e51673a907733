package repository

import (
	"context"
	"time"

	"florexport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FiltroReporte selects the orders feeding a load report.
type FiltroReporte struct {
	Desde            time.Time
	Hasta            time.Time
	SoloExportacion  bool
	IncluirExcluidos bool
}

// PedidoRepository persists sales orders. Lines are never diffed: an update
// replaces the whole set inside the caller's transaction.
type PedidoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.PedidoVenta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoVenta, error)
	// ReemplazarLineasTx deletes the order's lines (and their assorted rows),
	// saves the header and inserts p.Lineas.
	ReemplazarLineasTx(ctx context.Context, tx *gorm.DB, p *model.PedidoVenta) error
	FindLinea(ctx context.Context, id uuid.UUID) (*model.LineaPedidoVenta, error)
	ReemplazarSurtidoTx(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, items []model.ConfiguracionSurtido) error
	ListarParaReporte(ctx context.Context, f FiltroReporte) ([]model.PedidoVenta, error)
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.PedidoVenta) error {
	return tx.WithContext(ctx).Omit("Cliente").Create(p).Error
}

func preloadLineas(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Cliente").
		Preload("Lineas.Familia").
		Preload("Lineas.Producto").
		Preload("Lineas.Variedad").
		Preload("Lineas.Tamano").
		Preload("Lineas.Proveedor").
		Preload("Lineas.Empaque").
		Preload("Lineas.Surtido", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") }).
		Preload("Lineas.Surtido.Variedad")
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoVenta, error) {
	var p model.PedidoVenta
	if err := preloadLineas(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) ReemplazarLineasTx(ctx context.Context, tx *gorm.DB, p *model.PedidoVenta) error {
	tx = tx.WithContext(ctx)
	viejas := tx.Model(&model.LineaPedidoVenta{}).Select("id").Where("pedido_id = ?", p.ID)
	if err := tx.Where("linea_id IN (?)", viejas).Delete(&model.ConfiguracionSurtido{}).Error; err != nil {
		return err
	}
	if err := tx.Where("pedido_id = ?", p.ID).Delete(&model.LineaPedidoVenta{}).Error; err != nil {
		return err
	}
	lineas := p.Lineas
	if err := tx.Omit("Lineas", "Cliente").Save(p).Error; err != nil {
		return err
	}
	for i := range lineas {
		lineas[i].PedidoID = p.ID
	}
	if len(lineas) > 0 {
		if err := tx.Create(&lineas).Error; err != nil {
			return err
		}
	}
	p.Lineas = lineas
	return nil
}

func (r *pedidoRepo) FindLinea(ctx context.Context, id uuid.UUID) (*model.LineaPedidoVenta, error) {
	var l model.LineaPedidoVenta
	if err := r.db.WithContext(ctx).Preload("Variedad").First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *pedidoRepo) ReemplazarSurtidoTx(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, items []model.ConfiguracionSurtido) error {
	tx = tx.WithContext(ctx)
	if err := tx.Where("linea_id = ?", lineaID).Delete(&model.ConfiguracionSurtido{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].LineaID = lineaID
		items[i].Orden = i
	}
	return tx.Omit("Variedad").Create(&items).Error
}

func (r *pedidoRepo) ListarParaReporte(ctx context.Context, f FiltroReporte) ([]model.PedidoVenta, error) {
	q := r.db.WithContext(ctx).Model(&model.PedidoVenta{}).
		Where("fecha BETWEEN ? AND ?", f.Desde, f.Hasta)
	if f.SoloExportacion {
		q = q.Where("es_exportacion = true")
	}
	if !f.IncluirExcluidos {
		q = q.Where("excluir_reporte = false")
	}
	var pedidos []model.PedidoVenta
	err := preloadLineas(q).Order("fecha asc, id asc").Find(&pedidos).Error
	return pedidos, err
}
