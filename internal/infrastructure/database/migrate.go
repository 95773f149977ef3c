package database

import (
	"fmt"
	"time"

	"obstetrics-record-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SchemaVersion is the record layout version. Bump it and append a migration
// whenever the PatientRecord shape changes.
const SchemaVersion = 1

// SchemaMigration records an applied migration version.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_patients",
		up: func(tx *gorm.DB) error {
			// patients table with the idx_patients_created_at index, plus the audit trail
			if err := tx.Migrator().CreateTable(&entity.PatientRecord{}); err != nil {
				return err
			}
			return tx.Migrator().CreateTable(&entity.AuditLog{})
		},
	},
}

// Migrate applies every pending migration, each in its own transaction,
// and returns the resulting schema version. Applied versions are skipped.
func Migrate(db *gorm.DB, log *logrus.Logger) (int, error) {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return 0, fmt.Errorf("create schema_migrations table: %w", err)
	}

	var applied []SchemaMigration
	if err := db.Find(&applied).Error; err != nil {
		return 0, fmt.Errorf("read applied migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	current := 0
	for _, m := range migrations {
		if done[m.version] {
			current = m.version
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: m.version, Name: m.name}).Error
		})
		if err != nil {
			return current, fmt.Errorf("apply migration %d_%s: %w", m.version, m.name, err)
		}

		log.Infof("Applied migration %d_%s", m.version, m.name)
		current = m.version
	}

	return current, nil
}
