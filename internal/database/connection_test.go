package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "postgres from parts",
			cfg:      DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "app", Password: "pw", Name: "nutri", SSLMode: "disable"},
			expected: "host=db user=app password=pw dbname=nutri port=5432 sslmode=disable",
		},
		{
			name:     "postgres prefers url",
			cfg:      DatabaseConfig{Driver: "postgresql", URL: "postgres://app:pw@db/nutri", Host: "ignored"},
			expected: "postgres://app:pw@db/nutri",
		},
		{
			name:     "mysql from parts",
			cfg:      DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "app", Password: "pw", Name: "nutri"},
			expected: "app:pw@tcp(db:3306)/nutri?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:     "sqlite enables foreign keys",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "dev.sqlite"},
			expected: "dev.sqlite?_foreign_keys=on",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestInitDatabaseUnsupportedDriverFailsFast(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, model := range Models {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	db := setupTestDB(t)

	first := models.User{SubjectID: "sub-1", Email: "alice@example.com"}
	require.NoError(t, db.Create(&first).Error)

	dup := models.User{SubjectID: "sub-2", Email: "alice@example.com"}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestForeignKeyViolationIsTranslated(t *testing.T) {
	db := setupTestDB(t)

	item := models.WeeklyAssignment{UserID: 999, WeekStartDate: "2024-01-01", MealPlanID: 999}
	err := db.Create(&item).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsUnavailable(driver.ErrBadConn))
	assert.True(t, IsUnavailable(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
	assert.False(t, IsUnavailable(gorm.ErrRecordNotFound))
}
