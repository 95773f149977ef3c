package repository

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"obstetrics-record-service/config"
	"obstetrics-record-service/internal/domain/entity"
	domainRepo "obstetrics-record-service/internal/domain/repository"
	"obstetrics-record-service/internal/infrastructure/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newSQLiteRepo(t *testing.T) domainRepo.PatientRecordRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "obstetrics.db")})
	require.NoError(t, err)
	_, err = database.Migrate(db, testLogger())
	require.NoError(t, err)

	repo := NewPatientRecordRepository(db, testLogger())
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newRedisRepo(t *testing.T) domainRepo.PatientRecordRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo, err := NewPatientRecordRedisRepository(context.Background(), client, "test", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

var backends = map[string]func(t *testing.T) domainRepo.PatientRecordRepository{
	"sqlite": newSQLiteRepo,
	"redis":  newRedisRepo,
}

func newRecord(id string, createdAt int64) *entity.PatientRecord {
	return &entity.PatientRecord{
		ID:              id,
		Name:            "Funmi Adeyemi",
		Age:             31,
		G:               3,
		P:               2,
		EGA:             "28 weeks + 1 days",
		EDD:             "2025-05-10",
		BeingManagedFor: "Gestational diabetes",
		Complaints:      "Polyuria",
		ODQ:             entity.ODQ{FetalMovements: true, Frequency: true},
		Examination: entity.Examination{
			General:    "Well",
			VitalSigns: entity.VitalSigns{BP: "120/80"},
			Uterus:     "Term size",
		},
		Plan:      "Diet review",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestRecordStoreContract(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("empty store lists nothing", func(t *testing.T) {
				repo := open(t)
				records, err := repo.ListAll(ctx)
				require.NoError(t, err)
				assert.NotNil(t, records)
				assert.Empty(t, records)
				assert.True(t, repo.Available())
			})

			t.Run("create then find returns equal record", func(t *testing.T) {
				repo := open(t)
				want := newRecord("1700000000001", 1700000000001)

				id, err := repo.Create(ctx, want)
				require.NoError(t, err)
				assert.Equal(t, want.ID, id)

				got, err := repo.FindByID(ctx, id)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, *want, *got)
			})

			t.Run("all ODQ flags survive round trip", func(t *testing.T) {
				repo := open(t)
				r := newRecord("1", 1)
				r.ODQ = entity.ODQ{}
				_, err := repo.Create(ctx, r)
				require.NoError(t, err)

				got, err := repo.FindByID(ctx, "1")
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Len(t, got.ODQ.Entries(), len(entity.ODQKeys))
				assert.Equal(t, entity.ODQ{}, got.ODQ)
			})

			t.Run("duplicate create fails", func(t *testing.T) {
				repo := open(t)
				_, err := repo.Create(ctx, newRecord("dup", 10))
				require.NoError(t, err)

				_, err = repo.Create(ctx, newRecord("dup", 20))
				assert.ErrorIs(t, err, domainRepo.ErrDuplicateKey)
			})

			t.Run("create without id is rejected", func(t *testing.T) {
				repo := open(t)
				_, err := repo.Create(ctx, newRecord("", 10))
				assert.ErrorIs(t, err, domainRepo.ErrInvalidRecord)
			})

			t.Run("update keeps createdAt and advances updatedAt", func(t *testing.T) {
				repo := open(t)
				_, err := repo.Create(ctx, newRecord("u1", 100))
				require.NoError(t, err)

				changed := newRecord("u1", 999)
				changed.Name = "Funmi A."
				changed.EGA = ""
				changed.UpdatedAt = 500
				id, err := repo.Update(ctx, changed)
				require.NoError(t, err)
				assert.Equal(t, "u1", id)

				got, err := repo.FindByID(ctx, "u1")
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "Funmi A.", got.Name)
				assert.Equal(t, "", got.EGA)
				assert.Equal(t, int64(100), got.CreatedAt)
				assert.Equal(t, int64(500), got.UpdatedAt)

				stale := newRecord("u1", 100)
				stale.UpdatedAt = 200
				_, err = repo.Update(ctx, stale)
				require.NoError(t, err)
				got, err = repo.FindByID(ctx, "u1")
				require.NoError(t, err)
				assert.Equal(t, int64(500), got.UpdatedAt)
			})

			t.Run("update of missing id fails", func(t *testing.T) {
				repo := open(t)
				_, err := repo.Update(ctx, newRecord("ghost", 1))
				assert.ErrorIs(t, err, domainRepo.ErrNotFound)

				got, err := repo.FindByID(ctx, "ghost")
				require.NoError(t, err)
				assert.Nil(t, got)
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				repo := open(t)
				_, err := repo.Create(ctx, newRecord("d1", 1))
				require.NoError(t, err)

				require.NoError(t, repo.Delete(ctx, "d1"))
				require.NoError(t, repo.Delete(ctx, "d1"))

				got, err := repo.FindByID(ctx, "d1")
				require.NoError(t, err)
				assert.Nil(t, got)

				records, err := repo.ListAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, records)
			})

			t.Run("created range scan uses inclusive bounds", func(t *testing.T) {
				repo := open(t)
				for _, ts := range []int64{300, 100, 200, 400} {
					_, err := repo.Create(ctx, newRecord(string(rune('a'+ts/100)), ts))
					require.NoError(t, err)
				}

				records, err := repo.ListCreatedBetween(ctx, 200, 300)
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, int64(200), records[0].CreatedAt)
				assert.Equal(t, int64(300), records[1].CreatedAt)

				all, err := repo.ListAll(ctx)
				require.NoError(t, err)
				assert.Len(t, all, 4)
			})
		})
	}
}

func TestMigrateRunsOncePerVersion(t *testing.T) {
	db, err := database.NewSQLiteConnection(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "obstetrics.db")})
	require.NoError(t, err)

	version, err := database.Migrate(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, database.SchemaVersion, version)

	version, err = database.Migrate(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, database.SchemaVersion, version)

	var count int64
	require.NoError(t, db.Model(&database.SchemaMigration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, db.Migrator().HasIndex(&entity.PatientRecord{}, "idx_patients_created_at"))
}

func TestRedisSchemaVersionGuard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	_, err := NewPatientRecordRedisRepository(ctx, client, "obstetrics-db", testLogger())
	require.NoError(t, err)
	stored, err := mr.Get("obstetrics-db:schema-version")
	require.NoError(t, err)
	assert.Equal(t, "1", stored)

	mr.Set("obstetrics-db:schema-version", "9")
	_, err = NewPatientRecordRedisRepository(ctx, client, "obstetrics-db", testLogger())
	assert.Error(t, err)
}

func TestUnavailableRepositoryIsSoftNoop(t *testing.T) {
	repo := NewUnavailableRepository(testLogger())
	ctx := context.Background()

	assert.False(t, repo.Available())

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	id, err := repo.Create(ctx, newRecord("x", 1))
	require.NoError(t, err)
	assert.Empty(t, id)

	got, err := repo.FindByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, repo.Delete(ctx, "x"))
}
