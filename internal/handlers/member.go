package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/http/response"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
)

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

type memberRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=200"`
}

// GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	p := pageParams(c, "name", true)
	members, total, err := h.memberService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, toMemberDtos(members), total, p)
}

// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toMemberDto(member))
}

// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	member, err := h.memberService.Create(c.Request.Context(), services.MemberInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toMemberDto(member))
}

// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid("invalid_request", "%s", err.Error()))
		return
	}
	member, err := h.memberService.Update(c.Request.Context(), id, services.MemberInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toMemberDto(member))
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, apperr.Invalid("invalid_id", "id must be a positive integer"))
		return
	}
	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
