package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/http/response"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
)

type BorrowHandler struct {
	borrowService services.BorrowService
}

func NewBorrowHandler(borrowService services.BorrowService) *BorrowHandler {
	return &BorrowHandler{borrowService: borrowService}
}

type beginLoanRequest struct {
	BookID     uint      `json:"book_id" binding:"required"`
	MemberID   uint      `json:"member_id" binding:"required"`
	BorrowDate time.Time `json:"borrow_date" binding:"required"`
}

type editLoanRequest struct {
	BookID     uint       `json:"book_id" binding:"required"`
	MemberID   uint       `json:"member_id" binding:"required"`
	BorrowDate time.Time  `json:"borrow_date" binding:"required"`
	ReturnDate *time.Time `json:"return_date"`
}

type returnRequest struct {
	ReturnDate time.Time `json:"return_date"`
}

// GET /api/borrows
func (h *BorrowHandler) List(c *gin.Context) {
	p := pageParams(c, "borrowdate", false)
	records, total, err := h.borrowService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toBorrowDtos(records), total, p)
}

// GET /api/borrows/:id
func (h *BorrowHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	record, err := h.borrowService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowDto(record))
}

// GET /api/borrows/byMember/:memberId
func (h *BorrowHandler) ListByMember(c *gin.Context) {
	memberID, ok := idParam(c, "memberId")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "memberId must be a positive integer"))
		return
	}
	p := pageParams(c, "borrowdate", false)
	records, total, err := h.borrowService.ListByMember(c.Request.Context(), memberID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toBorrowDtos(records), total, p)
}

// GET /api/borrows/byBook/:bookId
func (h *BorrowHandler) ListByBook(c *gin.Context) {
	bookID, ok := idParam(c, "bookId")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "bookId must be a positive integer"))
		return
	}
	p := pageParams(c, "borrowdate", false)
	records, total, err := h.borrowService.ListByBook(c.Request.Context(), bookID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toBorrowDtos(records), total, p)
}

// GET /api/borrows/active
func (h *BorrowHandler) ListActive(c *gin.Context) {
	p := pageParams(c, "borrowdate", false)
	records, total, err := h.borrowService.ListActive(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toBorrowDtos(records), total, p)
}

// POST /api/borrows
func (h *BorrowHandler) Begin(c *gin.Context) {
	var req beginLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	record, err := h.borrowService.BeginLoan(c.Request.Context(), services.BeginLoanInput{
		BookID:     req.BookID,
		MemberID:   req.MemberID,
		BorrowDate: req.BorrowDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toBorrowDto(record))
}

// POST /api/borrows/:bookId/return
func (h *BorrowHandler) Return(c *gin.Context) {
	bookID, ok := idParam(c, "bookId")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "bookId must be a positive integer"))
		return
	}
	// The body is optional; an empty return date means "now".
	var req returnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
			return
		}
	}
	record, err := h.borrowService.CloseLoan(c.Request.Context(), bookID, req.ReturnDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowDto(record))
}

// PUT /api/borrows/:id
func (h *BorrowHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	var req editLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	record, err := h.borrowService.EditLoan(c.Request.Context(), id, services.EditLoanInput{
		BookID:     req.BookID,
		MemberID:   req.MemberID,
		BorrowDate: req.BorrowDate,
		ReturnDate: req.ReturnDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowDto(record))
}

// DELETE /api/borrows/:id
func (h *BorrowHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	if err := h.borrowService.DeleteLoan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
