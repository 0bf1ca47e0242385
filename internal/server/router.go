package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/handlers"
	"github.com/librisapp/library-backend/internal/http/middleware"
	"github.com/librisapp/library-backend/internal/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	CORSOrigins   []string
	Healthcheck   *handlers.HealthcheckHandler
	AuthorHandler *handlers.AuthorHandler
	BookHandler   *handlers.BookHandler
	MemberHandler *handlers.MemberHandler
	BorrowHandler *handlers.BorrowHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.Healthcheck.Check)

	api := router.Group("/api")

	authors := api.Group("/authors")
	{
		authors.GET("", cfg.AuthorHandler.List)
		authors.GET("/:id", cfg.AuthorHandler.Get)
		authors.POST("", cfg.AuthorHandler.Create)
		authors.PUT("/:id", cfg.AuthorHandler.Update)
		authors.DELETE("/:id", cfg.AuthorHandler.Delete)
	}

	books := api.Group("/books")
	{
		books.GET("", cfg.BookHandler.List)
		books.GET("/:id", cfg.BookHandler.Get)
		books.POST("", cfg.BookHandler.Create)
		books.PUT("/:id", cfg.BookHandler.Update)
		books.DELETE("/:id", cfg.BookHandler.Delete)
	}

	members := api.Group("/members")
	{
		members.GET("", cfg.MemberHandler.List)
		members.GET("/:id", cfg.MemberHandler.Get)
		members.POST("", cfg.MemberHandler.Create)
		members.PUT("/:id", cfg.MemberHandler.Update)
		members.DELETE("/:id", cfg.MemberHandler.Delete)
	}

	borrows := api.Group("/borrows")
	{
		borrows.GET("", cfg.BorrowHandler.List)
		borrows.GET("/active", cfg.BorrowHandler.ListActive)
		borrows.GET("/byMember/:memberId", cfg.BorrowHandler.ListByMember)
		borrows.GET("/byBook/:bookId", cfg.BorrowHandler.ListByBook)
		borrows.GET("/:id", cfg.BorrowHandler.Get)
		borrows.POST("", cfg.BorrowHandler.Begin)
		borrows.POST("/:bookId/return", cfg.BorrowHandler.Return)
		borrows.PUT("/:id", cfg.BorrowHandler.Update)
		borrows.DELETE("/:id", cfg.BorrowHandler.Delete)
	}

	return router
}
