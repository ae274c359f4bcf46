package services

import (
	"testing"

	localCache "github.com/mossline/chronicle/pkg/internal/cache"
	"github.com/mossline/chronicle/pkg/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB points the global gorm source at a fresh in-memory SQLite
// database. A single connection keeps the in-memory database alive and
// serializes writers the way the storage layer is expected to.
func newTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))
	database.C = db

	// A fresh store per test; ristretto applies writes asynchronously, so a
	// shared instance could leak entries between tests.
	require.NoError(t, localCache.Setup())
}
