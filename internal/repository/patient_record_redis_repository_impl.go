package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"obstetrics-record-service/internal/domain/entity"
	domainRepo "obstetrics-record-service/internal/domain/repository"
	"obstetrics-record-service/internal/infrastructure/database"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// patientRecordRedisRepository keeps each record as JSON under <prefix>:patients:<id>
// and indexes ids by createdAt in the sorted set <prefix>:patients:by-created-at.
type patientRecordRedisRepository struct {
	client *redis.Client
	prefix string
	log    *logrus.Logger
}

// NewPatientRecordRedisRepository applies the schema version guard before returning the store.
func NewPatientRecordRedisRepository(ctx context.Context, client *redis.Client, prefix string, log *logrus.Logger) (domainRepo.PatientRecordRepository, error) {
	r := &patientRecordRedisRepository{client: client, prefix: prefix, log: log}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *patientRecordRedisRepository) recordKey(id string) string {
	return r.prefix + ":patients:" + id
}

func (r *patientRecordRedisRepository) indexKey() string {
	return r.prefix + ":patients:by-created-at"
}

func (r *patientRecordRedisRepository) versionKey() string {
	return r.prefix + ":schema-version"
}

func (r *patientRecordRedisRepository) ensureSchema(ctx context.Context) error {
	stored, err := r.client.Get(ctx, r.versionKey()).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return storageFatal(err)
	}
	if stored > database.SchemaVersion {
		return fmt.Errorf("redis schema version %d is newer than supported version %d", stored, database.SchemaVersion)
	}
	if stored == database.SchemaVersion {
		return nil
	}
	// version 1 has no key layout to migrate
	if err := r.client.Set(ctx, r.versionKey(), database.SchemaVersion, 0).Err(); err != nil {
		return storageFatal(err)
	}
	r.log.Infof("Redis record store initialized at schema version %d", database.SchemaVersion)
	return nil
}

func (r *patientRecordRedisRepository) ListAll(ctx context.Context) ([]entity.PatientRecord, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, storageFatal(err)
	}
	return r.loadRecords(ctx, ids)
}

func (r *patientRecordRedisRepository) ListCreatedBetween(ctx context.Context, from, to int64) ([]entity.PatientRecord, error) {
	ids, err := r.client.ZRangeByScore(ctx, r.indexKey(), &redis.ZRangeBy{
		Min: strconv.FormatInt(from, 10),
		Max: strconv.FormatInt(to, 10),
	}).Result()
	if err != nil {
		return nil, storageFatal(err)
	}
	return r.loadRecords(ctx, ids)
}

func (r *patientRecordRedisRepository) loadRecords(ctx context.Context, ids []string) ([]entity.PatientRecord, error) {
	records := []entity.PatientRecord{}
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageFatal(err)
	}

	for i, v := range values {
		payload, ok := v.(string)
		if !ok {
			// index entry without a record, left behind by an abandoned write
			r.log.Warnf("Record %s is indexed but missing", ids[i])
			continue
		}
		var record entity.PatientRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, storageFatal(err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *patientRecordRedisRepository) FindByID(ctx context.Context, id string) (*entity.PatientRecord, error) {
	payload, err := r.client.Get(ctx, r.recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, storageFatal(err)
	}
	var record entity.PatientRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, storageFatal(err)
	}
	return &record, nil
}

func (r *patientRecordRedisRepository) Create(ctx context.Context, record *entity.PatientRecord) (string, error) {
	if record.ID == "" {
		return "", domainRepo.ErrInvalidRecord
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	key := r.recordKey(record.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return domainRepo.ErrDuplicateKey
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(record.CreatedAt), Member: record.ID})
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, domainRepo.ErrDuplicateKey) {
			return "", err
		}
		return "", storageFatal(err)
	}
	return record.ID, nil
}

func (r *patientRecordRedisRepository) Update(ctx context.Context, record *entity.PatientRecord) (string, error) {
	if record.ID == "" {
		return "", domainRepo.ErrInvalidRecord
	}

	key := r.recordKey(record.ID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domainRepo.ErrNotFound
			}
			return err
		}
		var existing entity.PatientRecord
		if err := json.Unmarshal(current, &existing); err != nil {
			return err
		}
		keepTimestamps(record, &existing)

		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, domainRepo.ErrNotFound) {
			return "", err
		}
		return "", storageFatal(err)
	}
	return record.ID, nil
}

func (r *patientRecordRedisRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.recordKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return storageFatal(err)
	}
	return nil
}

func (r *patientRecordRedisRepository) Available() bool {
	return true
}

func (r *patientRecordRedisRepository) Close() error {
	return r.client.Close()
}
