package app

import (
	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/handlers"
	"github.com/librisapp/library-backend/internal/logger"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Author      *handlers.AuthorHandler
	Book        *handlers.BookHandler
	Member      *handlers.MemberHandler
	Borrow      *handlers.BorrowHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(db, log),
		Author:      handlers.NewAuthorHandler(serviceset.Author),
		Book:        handlers.NewBookHandler(serviceset.Book),
		Member:      handlers.NewMemberHandler(serviceset.Member),
		Borrow:      handlers.NewBorrowHandler(serviceset.Borrow),
	}
}
