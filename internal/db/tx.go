package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/httpx"
)

// RunInTx executes fn inside a single transactional scope: every read used to
// validate a precondition and every write that follows commit together or not
// at all. On any error the transaction is rolled back and the original error
// is surfaced unchanged, except store-level outages which are classified as
// retryable.
func RunInTx(ctx context.Context, gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := gdb.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if httpx.IsRetryableError(err) {
		return apperr.Unavailable("store_unavailable", err)
	}
	return err
}
