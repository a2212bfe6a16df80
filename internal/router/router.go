package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/handler"
	"taskflow/internal/middleware"
)

func New(
	timerHandler *handler.TimerHandler,
	taskHandler *handler.TaskHandler,
	historyHandler *handler.HistoryHandler,
	settingsHandler *handler.SettingsHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	timer := api.Group("/timer")
	timer.GET("/state", timerHandler.GetState)
	timer.GET("/presets", timerHandler.Presets)
	timer.GET("/events", timerHandler.Events)
	timer.POST("/activate", timerHandler.Activate)
	timer.POST("/start", timerHandler.Start)
	timer.POST("/pause", timerHandler.Pause)
	timer.POST("/stop", timerHandler.Stop)
	timer.POST("/reset", timerHandler.Reset)

	api.GET("/history", historyHandler.Get)
	api.DELETE("/history", historyHandler.Clear)

	tasks := api.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.DELETE("/completed", taskHandler.ClearCompleted)
	tasks.POST("/:id/toggle", taskHandler.Toggle)
	tasks.DELETE("/:id", taskHandler.Delete)

	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Update)

	return engine
}
