package service

import (
	"context"

	"obstetrics-record-service/internal/delivery/http/middleware"
	"obstetrics-record-service/internal/domain/entity"
	"obstetrics-record-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, action, entityName, entityID string, oldValue, newValue interface{}) error {
	requestID, _ := middleware.GetRequestIDFromContext(ctx)

	auditLog := &entity.AuditLog{
		RequestID:  requestID,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Metadata: entity.JSON{
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// noopAuditService is used by stores that have no audit_logs table.
type noopAuditService struct{}

func NewNoopAuditService() AuditService {
	return noopAuditService{}
}

func (noopAuditService) LogCreate(context.Context, string, string, string, interface{}) error {
	return nil
}

func (noopAuditService) LogUpdate(context.Context, string, string, string, interface{}, interface{}) error {
	return nil
}

func (noopAuditService) LogDelete(context.Context, string, string, string, interface{}) error {
	return nil
}
