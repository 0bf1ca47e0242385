package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PagedResult is the listing envelope every collection endpoint returns.
type PagedResult struct {
	Data       any   `json:"data"`
	TotalItems int64 `json:"totalItems"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Page(c *gin.Context, data any, total int64, p pagination.Params) {
	c.JSON(http.StatusOK, PagedResult{
		Data:       data,
		TotalItems: total,
		PageNumber: p.Page,
		PageSize:   p.Size,
	})
}

// Error maps a service failure onto the wire: typed errors keep their status
// and code, anything else becomes a 500 without leaking internals.
func Error(c *gin.Context, err error) {
	status := apperr.StatusFor(err)
	msg := "internal server error"
	if status != http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    apperr.CodeFor(err),
		},
	})
}
