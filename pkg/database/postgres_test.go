package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type testWidget struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(Options{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent", MaxOpenConns: 1}, &testWidget{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&testWidget{}))
	assert.NoError(t, Ping(db))
}

func TestInitDB_UnknownDriver(t *testing.T) {
	_, err := InitDB(Options{Driver: "oracle"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Error, parseLogLevel("error"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
