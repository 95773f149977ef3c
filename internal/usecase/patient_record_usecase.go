package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"obstetrics-record-service/internal/converter"
	"obstetrics-record-service/internal/delivery/dto"
	"obstetrics-record-service/internal/domain/entity"
	"obstetrics-record-service/internal/domain/repository"
	"obstetrics-record-service/internal/export"
	"obstetrics-record-service/internal/query"
	"obstetrics-record-service/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound      = errors.New("patient record not found")
	ErrPatientAlreadyExists = errors.New("patient record already exists")
	ErrInvalidDateRange     = errors.New("from must not be after to")
)

type PatientRecordUsecase interface {
	ListPatients(ctx context.Context, q *dto.PatientListQuery) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id string) (*dto.PatientRecordResponse, error)
	CreatePatient(ctx context.Context, req *dto.PatientRecordRequest) (*dto.PatientRecordResponse, error)
	UpdatePatient(ctx context.Context, id string, req *dto.PatientRecordRequest) (*dto.PatientRecordResponse, error)
	DeletePatient(ctx context.Context, id string) error
	ListCreatedBetween(ctx context.Context, from, to int64) ([]dto.PatientRecordResponse, error)
	ExportPatientsPDF(ctx context.Context, q *dto.PatientListQuery, w io.Writer) error
	PatientSummary(ctx context.Context, id string) (string, error)
}

type patientRecordUsecase struct {
	log          *logrus.Logger
	recordRepo   repository.PatientRecordRepository
	auditService service.AuditService
	pageSize     int

	now func() time.Time
	loc *time.Location

	idMu   sync.Mutex
	lastID int64
}

func NewPatientRecordUsecase(
	log *logrus.Logger,
	recordRepo repository.PatientRecordRepository,
	auditService service.AuditService,
	pageSize int,
) PatientRecordUsecase {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}
	return &patientRecordUsecase{
		log:          log,
		recordRepo:   recordRepo,
		auditService: auditService,
		pageSize:     pageSize,
		now:          time.Now,
		loc:          time.Local,
	}
}

func (u *patientRecordUsecase) ListPatients(ctx context.Context, q *dto.PatientListQuery) (*dto.PatientListResponse, error) {
	records, err := u.recordRepo.ListAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patient records: %+v", err)
		return nil, err
	}

	filter, sortKey := converter.PatientFilterFromQuery(q)
	size := q.Limit
	if size < 1 {
		size = u.pageSize
	}

	return converter.PageToListResponse(query.Apply(records, filter, sortKey, q.Page, size)), nil
}

func (u *patientRecordUsecase) GetPatient(ctx context.Context, id string) (*dto.PatientRecordResponse, error) {
	record, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientRecordToResponse(record), nil
}

func (u *patientRecordUsecase) CreatePatient(ctx context.Context, req *dto.PatientRecordRequest) (*dto.PatientRecordResponse, error) {
	now := u.now()

	record := converter.PatientRecordFromRequest(req)
	record.ID = u.nextID(now)
	record.CreatedAt = now.UnixMilli()
	record.UpdatedAt = record.CreatedAt

	if _, err := u.recordRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPatientAlreadyExists
		}
		u.log.Warnf("Failed to create patient record: %+v", err)
		return nil, err
	}

	newValue := converter.PatientRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, entity.AuditActionPatientCreate, entity.AuditEntityPatient, record.ID, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *patientRecordUsecase) UpdatePatient(ctx context.Context, id string, req *dto.PatientRecordRequest) (*dto.PatientRecordResponse, error) {
	existing, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Capture old value for audit
	oldValue := converter.PatientRecordToResponse(existing)

	record := converter.PatientRecordFromRequest(req)
	record.ID = id
	record.UpdatedAt = u.now().UnixMilli()

	if _, err := u.recordRepo.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update patient record: %+v", err)
		return nil, err
	}

	newValue := converter.PatientRecordToResponse(record)
	if err := u.auditService.LogUpdate(ctx, entity.AuditActionPatientUpdate, entity.AuditEntityPatient, id, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

// DeletePatient succeeds for ids that do not exist.
func (u *patientRecordUsecase) DeletePatient(ctx context.Context, id string) error {
	existing, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return err
	}

	if err := u.recordRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete patient record: %+v", err)
		return err
	}

	if existing != nil {
		oldValue := converter.PatientRecordToResponse(existing)
		if err := u.auditService.LogDelete(ctx, entity.AuditActionPatientDelete, entity.AuditEntityPatient, id, oldValue); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return nil
}

func (u *patientRecordUsecase) ListCreatedBetween(ctx context.Context, from, to int64) ([]dto.PatientRecordResponse, error) {
	if from > to {
		return nil, ErrInvalidDateRange
	}

	records, err := u.recordRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		u.log.Warnf("Failed to scan patient records by creation time: %+v", err)
		return nil, err
	}

	return converter.PatientRecordsToResponses(records), nil
}

// ExportPatientsPDF writes the whole filtered and sorted set, ignoring paging.
func (u *patientRecordUsecase) ExportPatientsPDF(ctx context.Context, q *dto.PatientListQuery, w io.Writer) error {
	records, err := u.recordRepo.ListAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patient records: %+v", err)
		return err
	}

	filter, sortKey := converter.PatientFilterFromQuery(q)
	records = query.Sort(query.Filter(records, filter), sortKey)

	if err := export.WritePatientListPDF(w, records, u.now().In(u.loc)); err != nil {
		u.log.Warnf("Failed to export patient list: %+v", err)
		return fmt.Errorf("export patient list: %w", err)
	}

	return nil
}

func (u *patientRecordUsecase) PatientSummary(ctx context.Context, id string) (string, error) {
	record, err := u.find(ctx, id)
	if err != nil {
		return "", err
	}
	return export.PatientSummary(record, u.loc), nil
}

func (u *patientRecordUsecase) find(ctx context.Context, id string) (*entity.PatientRecord, error) {
	record, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrPatientNotFound
	}
	return record, nil
}

// nextID returns the creation time in epoch milliseconds, bumped past the
// last id handed out so that two creates in the same millisecond differ.
func (u *patientRecordUsecase) nextID(now time.Time) string {
	u.idMu.Lock()
	defer u.idMu.Unlock()

	id := now.UnixMilli()
	if id <= u.lastID {
		id = u.lastID + 1
	}
	u.lastID = id
	return strconv.FormatInt(id, 10)
}
