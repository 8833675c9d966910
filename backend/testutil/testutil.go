package testutil

import (
	"fmt"
	"testing"
	"time"

	"cookmastery/backend/config"
	"cookmastery/backend/database"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Config returns a configuration suitable for tests.
func Config() *config.Config {
	cfg := config.Default()
	cfg.DBDriver = "sqlite"
	cfg.JWTSecret = "testsecret"
	return cfg
}

func Logger(tb testing.TB) *utils.Logger {
	tb.Helper()
	return utils.NewNopLogger()
}

// ObservedLogger records every entry at debug level and above for
// assertions.
func ObservedLogger(tb testing.TB) (*utils.Logger, *observer.ObservedLogs) {
	tb.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return &utils.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

// DB opens a private in-memory sqlite database with every table migrated.
// It is closed when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}
