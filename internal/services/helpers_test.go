package services_test

import (
	"testing"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/repos"
	"github.com/librisapp/library-backend/internal/services"
	"github.com/librisapp/library-backend/internal/testutil"
)

type env struct {
	db      *gorm.DB
	authors services.AuthorService
	books   services.BookService
	members services.MemberService
	borrows services.BorrowService
}

func newEnv(t *testing.T) env {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	authorRepo := repos.NewAuthorRepo(gdb, log)
	bookRepo := repos.NewBookRepo(gdb, log)
	memberRepo := repos.NewMemberRepo(gdb, log)
	borrowRepo := repos.NewBorrowRepo(gdb, log)
	guard := services.NewDeletionGuard(log, bookRepo, borrowRepo)

	return env{
		db:      gdb,
		authors: services.NewAuthorService(gdb, log, authorRepo, guard),
		books:   services.NewBookService(gdb, log, bookRepo, authorRepo, guard),
		members: services.NewMemberService(gdb, log, memberRepo, guard),
		borrows: services.NewBorrowService(gdb, log, borrowRepo, bookRepo, memberRepo),
	}
}
