package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Get returns the ledger with statistics. An optional limit trims the
// returned sessions; stats always cover the whole ledger.
func (h *HistoryHandler) Get(c *gin.Context) {
	view := h.historyService.Get()

	if rawLimit := c.Query("limit"); rawLimit != "" {
		if limit, err := strconv.Atoi(rawLimit); err == nil && limit >= 0 && limit < len(view.Sessions) {
			view.Sessions = view.Sessions[:limit]
		}
	}
	c.JSON(http.StatusOK, view)
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	h.historyService.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
