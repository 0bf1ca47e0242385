package app

import (
	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/services"
)

type Services struct {
	Guard  *services.DeletionGuard
	Author services.AuthorService
	Book   services.BookService
	Member services.MemberService
	Borrow services.BorrowService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	guard := services.NewDeletionGuard(log, reposet.Book, reposet.Borrow)
	return Services{
		Guard:  guard,
		Author: services.NewAuthorService(db, log, reposet.Author, guard),
		Book:   services.NewBookService(db, log, reposet.Book, reposet.Author, guard),
		Member: services.NewMemberService(db, log, reposet.Member, guard),
		Borrow: services.NewBorrowService(db, log, reposet.Borrow, reposet.Book, reposet.Member),
	}
}
