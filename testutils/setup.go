// Package testutils wires the initializers globals to throwaway backends for tests.
package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/storage"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestJWTSecret = "test-secret"

var testDBSeq int64

// SetupDB opens a unique in-memory SQLite database, migrates it and installs
// it as initializers.DB until the test ends.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:aroena_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := initializers.DB
	t.Cleanup(func() {
		if initializers.DB == gdb {
			initializers.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := gdb.AutoMigrate(&models.User{}, &models.Service{}, &models.Order{}, &models.Admin{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	initializers.DB = gdb
	return gdb
}

// SetupAuth installs a token manager and an in-memory revocation store.
func SetupAuth(t *testing.T) *utils.TokenManager {
	t.Helper()

	prevTokens, prevRevocations := initializers.Tokens, initializers.Revocations
	t.Cleanup(func() {
		initializers.Tokens, initializers.Revocations = prevTokens, prevRevocations
	})

	initializers.Tokens = utils.NewTokenManager(TestJWTSecret, time.Hour)
	initializers.Revocations = utils.NewMemoryRevocationStore()
	return initializers.Tokens
}

// SetupStorage installs a local image store rooted in a temp directory.
func SetupStorage(t *testing.T) *storage.LocalStore {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:2009")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	prev := initializers.Images
	t.Cleanup(func() { initializers.Images = prev })
	initializers.Images = store
	return store
}

// Setup prepares database, auth and storage in one call.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := SetupDB(t)
	SetupAuth(t)
	SetupStorage(t)
	return gdb
}
