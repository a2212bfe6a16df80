package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsStore
}

type updateSettingsRequest struct {
	CustomMinutes *int `json:"customMinutes"`
}

func NewSettingsHandler(settings *service.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	writeOK(c, gin.H{"settings": h.settings.Get()})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	if req.CustomMinutes == nil {
		writeError(c, apperrors.BadRequest("invalid_settings", "customMinutes is required"))
		return
	}

	settings := h.settings.SetCustomMinutes(c.Request.Context(), *req.CustomMinutes)
	writeOK(c, gin.H{"settings": settings})
}
