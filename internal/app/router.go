package app

import (
	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:           log,
		CORSOrigins:   cfg.CORSOrigins,
		Healthcheck:   handlerset.Healthcheck,
		AuthorHandler: handlerset.Author,
		BookHandler:   handlerset.Book,
		MemberHandler: handlerset.Member,
		BorrowHandler: handlerset.Borrow,
	})
}
