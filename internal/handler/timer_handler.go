package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

type TimerHandler struct {
	timerService *service.TimerService
}

type activateRequest struct {
	Type    string `json:"type"`
	Minutes *int   `json:"minutes"`
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

func (h *TimerHandler) GetState(c *gin.Context) {
	writeOK(c, gin.H{"state": h.timerService.GetState()})
}

func (h *TimerHandler) Presets(c *gin.Context) {
	writeOK(c, gin.H{"presets": h.timerService.Presets()})
}

func (h *TimerHandler) Activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	state, apiErr := h.timerService.Activate(c.Request.Context(), service.ActivateInput{
		Type:    req.Type,
		Minutes: req.Minutes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	writeOK(c, gin.H{"state": state})
}

func (h *TimerHandler) Start(c *gin.Context) {
	writeOK(c, gin.H{"state": h.timerService.Start()})
}

func (h *TimerHandler) Pause(c *gin.Context) {
	writeOK(c, gin.H{"state": h.timerService.Pause()})
}

func (h *TimerHandler) Stop(c *gin.Context) {
	result := h.timerService.Stop(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

func (h *TimerHandler) Reset(c *gin.Context) {
	writeOK(c, gin.H{"state": h.timerService.Reset()})
}

// Events streams the timer state as server-sent events, starting with the
// current state.
func (h *TimerHandler) Events(c *gin.Context) {
	updates := h.timerService.Watch(c.Request.Context())

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("state", h.timerService.GetState())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		view, open := <-updates
		if !open {
			return false
		}
		c.SSEvent("state", view)
		return true
	})
}
