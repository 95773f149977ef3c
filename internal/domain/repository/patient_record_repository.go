package repository

import (
	"context"
	"errors"

	"obstetrics-record-service/internal/domain/entity"
)

var (
	ErrDuplicateKey       = errors.New("record id already exists")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidRecord      = errors.New("record id is required")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageFatal       = errors.New("storage failure")
)

// PatientRecordRepository is the Record Store. Every call is one storage transaction.
type PatientRecordRepository interface {
	// ListAll returns every record. Callers must not rely on the order.
	ListAll(ctx context.Context) ([]entity.PatientRecord, error)
	// ListCreatedBetween scans the createdAt index, both bounds inclusive, oldest first.
	ListCreatedBetween(ctx context.Context, from, to int64) ([]entity.PatientRecord, error)
	FindByID(ctx context.Context, id string) (*entity.PatientRecord, error)
	// Create fails with ErrDuplicateKey when the id is taken.
	Create(ctx context.Context, record *entity.PatientRecord) (string, error)
	// Update replaces the stored record. It fails with ErrNotFound when the id is absent,
	// keeps the stored CreatedAt and never moves UpdatedAt backwards.
	Update(ctx context.Context, record *entity.PatientRecord) (string, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// Available is false when no persistent backing store exists.
	Available() bool
	Close() error
}
