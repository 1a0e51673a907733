package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobDe(t *testing.T, tipo string, payload interface{}) Job {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return Job{Type: tipo, Payload: data}
}

func TestDerivacionWorker_InvocaDerivar(t *testing.T) {
	familia := uuid.New()
	var recibido uuid.UUID
	w := NewDerivacionWorker(nil, func(_ context.Context, id uuid.UUID) (int, int, error) {
		recibido = id
		return 3, 1, nil
	})

	w.Process(context.Background(), jobDe(t, jobDerivacion, DerivacionPayload{FamiliaID: familia.String()}))
	assert.Equal(t, familia, recibido)
}

func TestDerivacionWorker_IgnoraTipoDesconocido(t *testing.T) {
	llamado := false
	w := NewDerivacionWorker(nil, func(_ context.Context, _ uuid.UUID) (int, int, error) {
		llamado = true
		return 0, 0, nil
	})

	w.Process(context.Background(), jobDe(t, "email", map[string]string{"to": "x"}))
	assert.False(t, llamado)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func fallaSiempre(context.Context, uuid.UUID) (int, int, error) {
	return 0, 0, errors.New("db caída")
}

func TestDerivacionWorker_ReencolaConIntentoSumado(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	w := NewDerivacionWorker(rdb, fallaSiempre)

	w.Process(ctx, jobDe(t, jobDerivacion, DerivacionPayload{FamiliaID: uuid.NewString()}))

	raw, err := rdb.RPop(ctx, QueueDerivacion).Result()
	require.NoError(t, err)
	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, 1, job.Attempts)
	n, err := DLQLength(ctx, rdb, QueueDerivacion)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDerivacionWorker_AgotaIntentosVaAlDLQ(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	w := NewDerivacionWorker(rdb, fallaSiempre)

	job := jobDe(t, jobDerivacion, DerivacionPayload{FamiliaID: uuid.NewString()})
	job.Attempts = maxAttempts - 1
	w.Process(ctx, job)

	n, err := DLQLength(ctx, rdb, QueueDerivacion)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	pendientes, err := rdb.LLen(ctx, QueueDerivacion).Result()
	require.NoError(t, err)
	assert.Zero(t, pendientes)
}

func TestDerivacionWorker_ReencoladoFallidoNoPierdeElJob(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	// A string at the queue key makes LPUSH fail with WRONGTYPE.
	require.NoError(t, mr.Set(QueueDerivacion, "ocupada"))
	w := NewDerivacionWorker(rdb, fallaSiempre)

	w.Process(ctx, jobDe(t, jobDerivacion, DerivacionPayload{FamiliaID: uuid.NewString()}))

	raw, err := rdb.RPop(ctx, DLQPrefix+QueueDerivacion).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, jobDerivacion, entry.JobType)
	assert.Equal(t, 1, entry.Attempts)
	assert.Contains(t, entry.Reason, "requeue")
}
