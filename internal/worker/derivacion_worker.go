package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// DerivarFunc runs one family derivation. Wired to the derivation service in
// the composition root.
type DerivarFunc func(ctx context.Context, familiaID uuid.UUID) (creados, omitidos int, err error)

// DerivacionWorker processes QueueDerivacion jobs. Failed jobs are re-queued
// until maxAttempts, then moved to the DLQ. Derivation is idempotent, so a
// retry after a partial run only creates what is still missing.
type DerivacionWorker struct {
	rdb     *redis.Client
	derivar DerivarFunc
}

func NewDerivacionWorker(rdb *redis.Client, derivar DerivarFunc) *DerivacionWorker {
	return &DerivacionWorker{rdb: rdb, derivar: derivar}
}

func (w *DerivacionWorker) Process(ctx context.Context, job Job) {
	if job.Type != jobDerivacion {
		log.Warn().Str("type", job.Type).Msg("derivacion_worker: unknown job type")
		return
	}
	var payload DerivacionPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("derivacion_worker: invalid payload")
		return
	}
	familiaID, err := uuid.Parse(payload.FamiliaID)
	if err != nil {
		sendToDLQ(ctx, w.rdb, QueueDerivacion, job, "familia_id invalido")
		return
	}

	creados, omitidos, err := w.derivar(ctx, familiaID)
	if err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			sendToDLQ(ctx, w.rdb, QueueDerivacion, job, err.Error())
			return
		}
		log.Warn().Err(err).Str("familia_id", payload.FamiliaID).Int("attempts", job.Attempts).Msg("derivacion_worker: retrying")
		if err := w.requeue(ctx, job); err != nil {
			log.Error().Err(err).Str("familia_id", payload.FamiliaID).Msg("derivacion_worker: requeue failed")
			sendToDLQ(ctx, w.rdb, QueueDerivacion, job, "requeue: "+err.Error())
		}
		return
	}
	log.Info().Str("familia_id", payload.FamiliaID).Int("creados", creados).Int("omitidos", omitidos).Msg("derivacion_worker: done")
}

func (w *DerivacionWorker) requeue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return w.rdb.LPush(ctx, QueueDerivacion, data).Err()
}
