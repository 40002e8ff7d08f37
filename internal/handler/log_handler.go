package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/middleware"
	"github.com/nullsec0x/securebank/internal/models"
)

// LogQuerier defines the read-side operations used by LogHandler.
type LogQuerier interface {
	ListLogs(ctx context.Context, q cqrs.ListLogsQuery) ([]models.LogView, error)
	ListUserLogs(ctx context.Context, q cqrs.ListUserLogsQuery) ([]models.LogView, error)
}

// LogHandler serves the audit trail. Both routes are admin-only.
type LogHandler struct {
	queries LogQuerier
}

type ListLogsResponse struct {
	Logs []models.LogView `json:"logs"`
}

func NewLogHandler(queries LogQuerier) *LogHandler {
	return &LogHandler{queries: queries}
}

func (h *LogHandler) ListLogs(c *gin.Context) {
	views, err := h.queries.ListLogs(c.Request.Context(), cqrs.ListLogsQuery{})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list logs")
		return
	}
	c.JSON(http.StatusOK, ListLogsResponse{Logs: views})
}

func (h *LogHandler) ListUserLogs(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	views, err := h.queries.ListUserLogs(c.Request.Context(), cqrs.ListUserLogsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list logs")
		return
	}
	c.JSON(http.StatusOK, ListLogsResponse{Logs: views})
}
