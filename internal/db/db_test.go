package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

func TestNewDB_SQLite(t *testing.T) {
	gdb, err := NewDB(config.DBConfig{
		Driver:       "sqlite",
		URL:          "file:newdb_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m), "%T not migrated", m)
	}
}

func TestNewDB_UnknownDriver(t *testing.T) {
	_, err := NewDB(config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestNewDB_AuditDefaults(t *testing.T) {
	gdb, err := NewDB(config.DBConfig{Driver: "sqlite", URL: "file:audit_defaults?mode=memory&cache=shared"})
	require.NoError(t, err)

	ut := models.UserType{Name: "Admin"}
	require.NoError(t, gdb.Create(&ut).Error)

	var got models.UserType
	require.NoError(t, gdb.First(&got, ut.ID).Error)
	assert.Equal(t, models.No, got.IsDeleted)
	assert.Equal(t, models.Yes, got.IsActive)
}
