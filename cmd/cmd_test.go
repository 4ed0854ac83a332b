package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/models"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	return root.Execute()
}

func sqliteEnv(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "shiftdesk")
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", name)
	t.Setenv("DB_DSN", "")
	t.Setenv("LOG_LEVEL", "error")
	return name + ".db"
}

func openFile(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrateSeedAndCreateUser(t *testing.T) {
	path := sqliteEnv(t)

	require.NoError(t, run(t, "migrate"))
	require.NoError(t, run(t, "seed"))
	require.NoError(t, run(t, "seed"))
	require.NoError(t, run(t, "create-user", "--email", "admin@example.com", "--password", "secret123"))

	err := run(t, "create-user", "--email", "admin@example.com", "--password", "secret123")
	assert.ErrorContains(t, err, "already exists")

	db := openFile(t, path)
	var rooms int64
	require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
	assert.EqualValues(t, 1, rooms)

	var user models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&user).Error)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "secret123"))
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	sqliteEnv(t)
	err := run(t, "create-user", "--email", "admin@example.com", "--password", "123")
	assert.ErrorContains(t, err, "at least 6")
}

func TestInvalidDriverFailsBeforeRunning(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	err := run(t, "migrate")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestServeFailsFastOnInvalidSchedule(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	sqliteEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("CRON_ENABLED", "true")
	t.Setenv("CRON_EXPIRE_SPEC", "not a schedule")

	err := run(t, "serve")
	assert.ErrorContains(t, err, "schedule stale shift expiry")
}
