package handler

import (
	"context"
	"net/http"
	"time"

	"florexport/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type estadoComponente struct {
	Estado     string `json:"estado"`
	LatenciaMs int64  `json:"latencia_ms"`
}

type healthResponse struct {
	OK           bool             `json:"ok"`
	Postgres     estadoComponente `json:"postgres"`
	Redis        estadoComponente `json:"redis"`
	Derivaciones *colaDerivacion  `json:"derivaciones,omitempty"`
}

type colaDerivacion struct {
	Pendientes int64 `json:"pendientes"`
	Fallidas   int64 `json:"fallidas"`
}

func comprobar(ping func() error) estadoComponente {
	start := time.Now()
	estado := "ok"
	if err := ping(); err != nil {
		estado = "error"
	}
	return estadoComponente{Estado: estado, LatenciaMs: time.Since(start).Milliseconds()}
}

// Health GET /health. 503 when Postgres or Redis is unreachable. Reports the
// derivation queue depth and its dead-letter count; never exposes internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		resp := healthResponse{
			Postgres: comprobar(func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
			Redis: comprobar(func() error { return rdb.Ping(ctx).Err() }),
		}
		if resp.Redis.Estado == "ok" {
			cola := &colaDerivacion{}
			cola.Pendientes, _ = rdb.LLen(ctx, worker.QueueDerivacion).Result()
			cola.Fallidas, _ = worker.DLQLength(ctx, rdb, worker.QueueDerivacion)
			resp.Derivaciones = cola
		}
		resp.OK = resp.Postgres.Estado == "ok" && resp.Redis.Estado == "ok"

		status := http.StatusOK
		if !resp.OK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}
