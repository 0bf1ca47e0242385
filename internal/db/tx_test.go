package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/db"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/httpx"
	"github.com/librisapp/library-backend/internal/testutil"
	"github.com/librisapp/library-backend/internal/types"
)

func TestRunInTxCommits(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()

	err := db.RunInTx(ctx, gdb, func(tx *gorm.DB) error {
		return tx.Create(&types.Author{Name: "Committed", Country: "X", City: "Y"}).Error
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	var count int64
	if err := gdb.Model(&types.Author{}).Where("name = ?", "Committed").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.RunInTx(ctx, gdb, func(tx *gorm.DB) error {
		if err := tx.Create(&types.Author{Name: "Rolled Back", Country: "X", City: "Y"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx = %v, want the original error", err)
	}

	var count int64
	if err := gdb.Model(&types.Author{}).Where("name = ?", "Rolled Back").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d after rollback, want 0", count)
	}
}

func TestRunInTxPassesTypedErrorsThrough(t *testing.T) {
	gdb := testutil.DB(t)

	want := apperr.Conflict("book_on_loan", "book is already on loan")
	err := db.RunInTx(context.Background(), gdb, func(tx *gorm.DB) error {
		return want
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("RunInTx = %v, want the conflict unchanged", err)
	}
	if apperr.IsTransient(err) {
		t.Fatal("conflict reclassified as transient")
	}
}

type dialTimeout struct{}

func (dialTimeout) Error() string   { return "dial tcp: i/o timeout" }
func (dialTimeout) Timeout() bool   { return true }
func (dialTimeout) Temporary() bool { return true }

func TestRunInTxClassifiesOutagesAsTransient(t *testing.T) {
	gdb := testutil.DB(t)

	tests := []struct {
		name string
		err  error
	}{
		{"context deadline", fmt.Errorf("query authors: %w", context.DeadlineExceeded)},
		{"connection timeout", fmt.Errorf("begin: %w", dialTimeout{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.RunInTx(context.Background(), gdb, func(tx *gorm.DB) error {
				return tt.err
			})
			if !apperr.IsTransient(err) {
				t.Fatalf("RunInTx = %v, want transient", err)
			}
			if apperr.CodeFor(err) != "store_unavailable" {
				t.Fatalf("code = %q, want store_unavailable", apperr.CodeFor(err))
			}
			if !httpx.IsRetryableError(err) {
				t.Fatalf("classified outage %v not retryable", err)
			}
		})
	}
}
