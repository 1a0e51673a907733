package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache layout:
//
//	opciones:version             counter bumped when a variety or size is created
//	opciones:<ver>:<familia_id>  hash, field "variedades" or "tamanos:<variedad_id>"
//	reporte:version              counter bumped on every order write
//	reporte:<ver>:<filtro>       serialized report
//
// Every helper is a no-op when rdb is nil, and cache failures are logged and
// treated as misses.
const (
	opcionesTTL        = 30 * time.Minute
	keyOpcionesVersion = "opciones:version"
	keyReporteVersion  = "reporte:version"
)

// keyOpciones is the cascade hash of one family under the current catalog
// generation. Wildcard rules resolve against the whole catalog, so a new
// variety or size moves every family to a fresh key.
func keyOpciones(ctx context.Context, rdb *redis.Client, familiaID uuid.UUID) string {
	return fmt.Sprintf("opciones:%d:%s", generacion(ctx, rdb, keyOpcionesVersion), familiaID)
}

func cacheGetHash(ctx context.Context, rdb *redis.Client, key, field string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.HGet(ctx, key, field).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: hget failed")
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func cacheSetHash(ctx context.Context, rdb *redis.Client, key, field string, v interface{}) {
	if rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	pipe.Expire(ctx, key, opcionesTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: hset failed")
	}
}

func cacheDel(ctx context.Context, rdb *redis.Client, key string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: del failed")
	}
}

func cacheGet(ctx context.Context, rdb *redis.Client, key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: get failed")
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, v interface{}, ttl time.Duration) {
	if rdb == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
}

// generacion returns the cache generation stored at key. Old generations
// are never read again and expire on their own TTL.
func generacion(ctx context.Context, rdb *redis.Client, key string) int64 {
	if rdb == nil {
		return 0
	}
	v, err := rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}

func avanzarGeneracion(ctx context.Context, rdb *redis.Client, key string) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: invalidation failed")
	}
}

func invalidarOpciones(ctx context.Context, rdb *redis.Client) {
	avanzarGeneracion(ctx, rdb, keyOpcionesVersion)
}

func invalidarReportes(ctx context.Context, rdb *redis.Client) {
	avanzarGeneracion(ctx, rdb, keyReporteVersion)
}

func keyReporte(version int64, filtro string) string {
	return fmt.Sprintf("reporte:%d:%s", version, filtro)
}
