package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
)

type HealthcheckHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthcheckHandler(gdb *gorm.DB, baseLog *logger.Logger) *HealthcheckHandler {
	return &HealthcheckHandler{db: gdb, log: baseLog.With("handler", "HealthcheckHandler")}
}

// GET /healthcheck
func (h *HealthcheckHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Warn("Database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
