package app

import (
	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/repos"
)

type Repos struct {
	Author repos.AuthorRepo
	Book   repos.BookRepo
	Member repos.MemberRepo
	Borrow repos.BorrowRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Author: repos.NewAuthorRepo(db, log),
		Book:   repos.NewBookRepo(db, log),
		Member: repos.NewMemberRepo(db, log),
		Borrow: repos.NewBorrowRepo(db, log),
	}
}
