package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/http/response"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
)

type BookHandler struct {
	bookService services.BookService
}

func NewBookHandler(bookService services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type bookRequest struct {
	Title         string    `json:"title" binding:"required,max=50"`
	PublishedDate time.Time `json:"published_date"`
	AuthorID      uint      `json:"author_id" binding:"required"`
}

// GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	p := pageParams(c, "title", true)
	books, total, err := h.bookService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toBookDtos(books), total, p)
}

// GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	book, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBookDto(book))
}

// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	book, err := h.bookService.Create(c.Request.Context(), services.BookInput{
		Title:         req.Title,
		PublishedDate: req.PublishedDate,
		AuthorID:      req.AuthorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toBookDto(book))
}

// PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	book, err := h.bookService.Update(c.Request.Context(), id, services.BookInput{
		Title:         req.Title,
		PublishedDate: req.PublishedDate,
		AuthorID:      req.AuthorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBookDto(book))
}

// DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	if err := h.bookService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
