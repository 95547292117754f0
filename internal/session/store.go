package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/tallersur/agenda-api/internal/schedule"
)

// ======================================================
// SNAPSHOT DE AGENDA
// ======================================================

// Snapshot es la foto inmutable de los intervalos ocupados de un
// (empleado, día) que sostiene una pantalla de agendamiento. Verified
// en false significa que la carga falló y la lista vacía no prueba
// disponibilidad: el que llama decide si bloquea el envío o no.
type Snapshot struct {
	Verified   bool                `json:"verified"`
	Intervals  []schedule.Interval `json:"intervals"`
	Generation uint64              `json:"generation"`
}

func Verified(intervals []schedule.Interval, gen uint64) Snapshot {
	return Snapshot{Verified: true, Intervals: intervals, Generation: gen}
}

func Unverified(gen uint64) Snapshot {
	return Snapshot{Verified: false, Generation: gen}
}

// Key identifica la sesión de pantalla: cambiar de empleado o de día
// es cambiar de llave, nunca se mezclan snapshots.
func Key(employeeID, day string) string {
	return fmt.Sprintf("agenda:%s:%s", employeeID, day)
}

// ======================================================
// STORE
// ======================================================

// Store guarda el snapshot vigente por sesión de pantalla y arbitra
// respuestas fuera de orden con un contador de generación: cada fetch
// toma un token en Begin y Commit descarta el resultado si ya no es el
// más reciente.
type Store interface {
	Begin(ctx context.Context, key string) (uint64, error)
	Commit(ctx context.Context, key string, snap Snapshot) (bool, error)
	Latest(ctx context.Context, key string) (*Snapshot, error)
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, log: log}
}

func genKey(key string) string { return key + ":gen" }

func snapKey(key string) string { return key + ":snapshot" }

// commitScript compara la generación vigente y guarda el snapshot en
// un solo paso del lado de redis: entre el chequeo y el SET no puede
// colarse otro commit.
var commitScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`)

func (s *RedisStore) Begin(ctx context.Context, key string) (uint64, error) {
	gen, err := s.rdb.Incr(ctx, genKey(key)).Result()
	if err != nil {
		return 0, err
	}

	ok, err := s.rdb.Expire(ctx, genKey(key), s.ttl).Result()
	if err != nil || !ok {
		// Una llave de generación sin TTL nunca se resetea sola.
		s.log.Warn("session gen key expire failed",
			zap.String("key", key), zap.Bool("applied", ok), zap.Error(err))
	}

	return uint64(gen), nil
}

func (s *RedisStore) Commit(ctx context.Context, key string, snap Snapshot) (bool, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return false, err
	}

	res, err := commitScript.Run(ctx, s.rdb,
		[]string{genKey(key), snapKey(key)},
		strconv.FormatUint(snap.Generation, 10),
		raw,
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}

	// 0 = respuesta vieja: llegó después de que otra carga tomó un
	// token más nuevo. Se tira, no se mezcla.
	return res == 1, nil
}

func (s *RedisStore) Latest(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := s.rdb.Get(ctx, snapKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
