// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kustommania/database"
	"kustommania/models"
)

// NewDB returns a migrated, isolated in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// CreateMotorcycle inserts a motorcycle with sensible defaults for fields
// left empty.
func CreateMotorcycle(t *testing.T, db *gorm.DB, m models.Motorcycle) models.Motorcycle {
	t.Helper()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Name == "" {
		m.Name = "Moto " + m.ID[:8]
	}
	if m.Slug == "" {
		m.Slug = "moto-" + m.ID[:8]
	}
	require.NoError(t, db.Omit("Images").Create(&m).Error)
	return m
}
