package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/http/response"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
)

type AuthorHandler struct {
	authorService services.AuthorService
}

func NewAuthorHandler(authorService services.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

type authorRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Country string `json:"country" binding:"required,max=50"`
	City    string `json:"city" binding:"required,max=50"`
}

// GET /api/authors
func (h *AuthorHandler) List(c *gin.Context) {
	p := pageParams(c, "name", true)
	authors, total, err := h.authorService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toAuthorDtos(authors), total, p)
}

// GET /api/authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	author, err := h.authorService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAuthorDto(author))
}

// POST /api/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	author, err := h.authorService.Create(c.Request.Context(), services.AuthorInput{
		Name:    req.Name,
		Country: req.Country,
		City:    req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toAuthorDto(author))
}

// PUT /api/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	author, err := h.authorService.Update(c.Request.Context(), id, services.AuthorInput{
		Name:    req.Name,
		Country: req.Country,
		City:    req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAuthorDto(author))
}

// DELETE /api/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	if err := h.authorService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
