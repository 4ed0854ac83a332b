package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftdesk/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "shifts"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shifts sslmode=disable", DSN(cfg))

	cfg.DBDriver = "mysql"
	cfg.DBPort = "3306"
	assert.Equal(t, "u:p@tcp(db:3306)/shifts?charset=utf8mb4&parseTime=True&loc=Local", DSN(cfg))

	cfg.DBDriver = "sqlite"
	assert.Equal(t, "shifts.db?_foreign_keys=on", DSN(cfg))

	cfg.DBDSN = "file::memory:"
	assert.Equal(t, "file::memory:", DSN(cfg))
}

func TestConnectDatabaseSQLite(t *testing.T) {
	cfg := config.Config{DBDriver: "sqlite", DBDSN: "file:storage_test?mode=memory&cache=shared", LogLevel: "info"}
	db, err := ConnectDatabase(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.NoError(t, Ping(context.Background(), db))

	for _, table := range []string{"attendants", "module_attendant_accesses", "attention_profile_services", "shifts"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestConnectDatabaseUnknownDriver(t *testing.T) {
	_, err := ConnectDatabase(context.Background(), config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestInitRedisDisabled(t *testing.T) {
	assert.Nil(t, InitRedis(context.Background(), config.Config{}, zap.NewNop()))
}
