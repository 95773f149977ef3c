package repository

import (
	"context"

	"obstetrics-record-service/internal/domain/entity"
	domainRepo "obstetrics-record-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// unavailableRepository is used when no persistent backing store is configured.
// Every operation is a soft no-op returning an empty or absent result.
type unavailableRepository struct {
	log *logrus.Logger
}

func NewUnavailableRepository(log *logrus.Logger) domainRepo.PatientRecordRepository {
	return &unavailableRepository{log: log}
}

func (r *unavailableRepository) skip(op string) {
	r.log.WithField("op", op).Debug(domainRepo.ErrStorageUnavailable.Error())
}

func (r *unavailableRepository) ListAll(ctx context.Context) ([]entity.PatientRecord, error) {
	r.skip("list")
	return []entity.PatientRecord{}, nil
}

func (r *unavailableRepository) ListCreatedBetween(ctx context.Context, from, to int64) ([]entity.PatientRecord, error) {
	r.skip("list_created_between")
	return []entity.PatientRecord{}, nil
}

func (r *unavailableRepository) FindByID(ctx context.Context, id string) (*entity.PatientRecord, error) {
	r.skip("find")
	return nil, nil
}

func (r *unavailableRepository) Create(ctx context.Context, record *entity.PatientRecord) (string, error) {
	r.skip("create")
	return "", nil
}

func (r *unavailableRepository) Update(ctx context.Context, record *entity.PatientRecord) (string, error) {
	r.skip("update")
	return "", nil
}

func (r *unavailableRepository) Delete(ctx context.Context, id string) error {
	r.skip("delete")
	return nil
}

func (r *unavailableRepository) Available() bool {
	return false
}

func (r *unavailableRepository) Close() error {
	return nil
}
