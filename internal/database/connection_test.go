package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/models"
)

func TestMigrationsOnSQLite(t *testing.T) {
	db, err := Open(sqlite.Open("file::memory:"), config.DatabaseConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db), "migrations are re-runnable")

	entry := &models.AuditLog{
		UserID:       "u1",
		Action:       "PUT /v1/orders/o1/status",
		ResourceType: "orders",
		ResourceID:   "o1",
		NewValues:    models.JSONB{"orderStatus": "Shipped"},
		Status:       200,
	}
	require.NoError(t, db.Create(entry).Error)
	assert.NotEmpty(t, entry.ID)

	var stored models.AuditLog
	require.NoError(t, db.First(&stored, "resource_id = ?", "o1").Error)
	assert.Equal(t, "Shipped", stored.NewValues["orderStatus"])
}
