// Package testutil gives tests a real gorm handle. Suites run against an
// in-memory SQLite database by default; set TEST_POSTGRES_DSN to exercise the
// same suites against Postgres.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/librisapp/library-backend/internal/db"
	"github.com/librisapp/library-backend/internal/logger"
)

// Logger returns a logger that discards everything, so test output stays
// readable.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// DB opens a migrated database for one test and tears it down afterwards.
// TranslateError is on so duplicate-key failures surface as
// gorm.ErrDuplicatedKey on both drivers, exactly as in production.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		gdb *gorm.DB
		err error
	)
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn != "" {
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		// A named shared in-memory database survives across the pool's
		// connections but vanishes once the last one closes.
		name := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		gdb, err = gorm.Open(sqlite.Open(name), cfg)
	}
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	truncateAll(tb, gdb)

	tb.Cleanup(func() {
		if dsn != "" {
			truncateAll(tb, gdb)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func truncateAll(tb testing.TB, gdb *gorm.DB) {
	tb.Helper()
	for _, table := range []string{"borrow_record", "book", "member", "author"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			tb.Fatalf("truncate %s: %v", table, err)
		}
	}
}
