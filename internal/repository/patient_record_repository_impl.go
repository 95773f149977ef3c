package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"obstetrics-record-service/internal/domain/entity"
	domainRepo "obstetrics-record-service/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// patientRecordRepository keeps records in a SQL table through gorm (sqlite or postgres).
type patientRecordRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewPatientRecordRepository(db *gorm.DB, log *logrus.Logger) domainRepo.PatientRecordRepository {
	return &patientRecordRepository{db: db, log: log}
}

func (r *patientRecordRepository) ListAll(ctx context.Context) ([]entity.PatientRecord, error) {
	records := []entity.PatientRecord{}
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, storageFatal(err)
	}
	return records, nil
}

func (r *patientRecordRepository) ListCreatedBetween(ctx context.Context, from, to int64) ([]entity.PatientRecord, error) {
	records := []entity.PatientRecord{}
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, storageFatal(err)
	}
	return records, nil
}

func (r *patientRecordRepository) FindByID(ctx context.Context, id string) (*entity.PatientRecord, error) {
	var record entity.PatientRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageFatal(err)
	}
	return &record, nil
}

func (r *patientRecordRepository) Create(ctx context.Context, record *entity.PatientRecord) (string, error) {
	if record.ID == "" {
		return "", domainRepo.ErrInvalidRecord
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.PatientRecord{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainRepo.ErrDuplicateKey
		}
		return tx.Create(record).Error
	})
	if err != nil {
		if errors.Is(err, domainRepo.ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return "", domainRepo.ErrDuplicateKey
		}
		return "", storageFatal(err)
	}
	return record.ID, nil
}

func (r *patientRecordRepository) Update(ctx context.Context, record *entity.PatientRecord) (string, error) {
	if record.ID == "" {
		return "", domainRepo.ErrInvalidRecord
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.PatientRecord
		if err := tx.Where("id = ?", record.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}
		keepTimestamps(record, &existing)
		return tx.Save(record).Error
	})
	if err != nil {
		if errors.Is(err, domainRepo.ErrNotFound) {
			return "", err
		}
		return "", storageFatal(err)
	}
	return record.ID, nil
}

func (r *patientRecordRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PatientRecord{}).Error
	if err != nil {
		return storageFatal(err)
	}
	return nil
}

func (r *patientRecordRepository) Available() bool {
	return true
}

func (r *patientRecordRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// keepTimestamps makes CreatedAt immutable and UpdatedAt monotone across a replace.
func keepTimestamps(record, existing *entity.PatientRecord) {
	record.CreatedAt = existing.CreatedAt
	if record.UpdatedAt < existing.UpdatedAt {
		record.UpdatedAt = existing.UpdatedAt
	}
}

func storageFatal(err error) error {
	return fmt.Errorf("%w: %w", domainRepo.ErrStorageFatal, err)
}

// isDuplicateKeyError checks for a PostgreSQL unique_violation
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), "patients")
	}
	return false
}
