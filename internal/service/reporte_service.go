package service

import (
	"context"
	"fmt"
	"time"

	"florexport/internal/agregacion"
	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReporteService builds the load report (four groupings) for a date range.
type ReporteService interface {
	Generar(ctx context.Context, filter dto.ReporteFilter) (*agregacion.Reporte, error)
}

type reporteService struct {
	pedidos repository.PedidoRepository
	rdb     *redis.Client
	ttl     time.Duration
	partes  int
}

// NewReporteService: partes is the aggregation fan-out, ttl the cache
// lifetime (0 disables caching).
func NewReporteService(pedidos repository.PedidoRepository, rdb *redis.Client, ttl time.Duration, partes int) ReporteService {
	if partes < 1 {
		partes = 1
	}
	return &reporteService{pedidos: pedidos, rdb: rdb, ttl: ttl, partes: partes}
}

func (s *reporteService) Generar(ctx context.Context, filter dto.ReporteFilter) (*agregacion.Reporte, error) {
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		return nil, fmt.Errorf("%w: desde: %v", ErrEntradaInvalida, err)
	}
	hasta, err := time.Parse("2006-01-02", filter.Hasta)
	if err != nil {
		return nil, fmt.Errorf("%w: hasta: %v", ErrEntradaInvalida, err)
	}
	if desde.After(hasta) {
		return nil, ErrRangoFechas
	}

	var key string
	if s.rdb != nil {
		key = keyReporte(generacion(ctx, s.rdb, keyReporteVersion), fmt.Sprintf("%s:%s:%t:%t",
			filter.Desde, filter.Hasta, filter.SoloExportacion, filter.IncluirExcluidos))
		var cached agregacion.Reporte
		if cacheGet(ctx, s.rdb, key, &cached) {
			return &cached, nil
		}
	}

	pedidos, err := s.pedidos.ListarParaReporte(ctx, repository.FiltroReporte{
		Desde:            desde,
		Hasta:            hasta,
		SoloExportacion:  filter.SoloExportacion,
		IncluirExcluidos: filter.IncluirExcluidos,
	})
	if err != nil {
		return nil, err
	}

	reporte := agregacion.Construir(aplanar(pedidos), s.partes)
	if err := agregacion.Conciliar(reporte); err != nil {
		log.Error().Err(err).Str("desde", filter.Desde).Str("hasta", filter.Hasta).Msg("reporte no concilia")
	}
	if key != "" {
		cacheSet(ctx, s.rdb, key, reporte, s.ttl)
	}
	return reporte, nil
}

// aplanar joins each line with its order header. Missing names stay empty
// and are labelled by the aggregation sentinels.
func aplanar(pedidos []model.PedidoVenta) []agregacion.Linea {
	var out []agregacion.Linea
	for _, p := range pedidos {
		var cliente string
		if p.Cliente != nil {
			cliente = p.Cliente.Nombre
		}
		for _, l := range p.Lineas {
			al := agregacion.Linea{
				Cliente:       cliente,
				Terminal:      deref(p.Terminal),
				Agencia:       deref(p.Agencia),
				AWB:           deref(p.AWB),
				Cajas:         l.Cajas,
				TallosPorCaja: l.TallosPorCaja,
				Neto:          l.Total,
			}
			if l.Proveedor != nil {
				al.Proveedor = l.Proveedor.Nombre
			}
			if l.Familia != nil {
				al.Familia = l.Familia.NombreCientifico
			}
			if l.Producto != nil {
				al.Producto = l.Producto.Nombre
			}
			if l.Empaque != nil {
				al.Empaque = l.Empaque.Nombre
			}
			if l.Variedad != nil {
				al.Variedad = l.Variedad.Nombre
			}
			if l.Tamano != nil {
				al.Tamano = l.Tamano.Nombre
			}
			for _, sc := range l.Surtido {
				item := agregacion.ItemSurtido{Cantidad: sc.Cantidad}
				if sc.Variedad != nil {
					item.Variedad = sc.Variedad.Nombre
				}
				al.Surtido = append(al.Surtido, item)
			}
			out = append(out, al)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
