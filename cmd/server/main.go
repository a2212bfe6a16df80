package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/app"
	"taskflow/internal/config"
	"taskflow/internal/router"
)

var configPath = flag.String("config", "", "Path to taskflow.yaml. Defaults to ./taskflow.yaml or ~/.config/taskflow/taskflow.yaml")

func main() {
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.Open(ctx, cfg)
	defer application.Close()
	loader.Watch(application.ApplyConfig)

	timerHandler, taskHandler, historyHandler, settingsHandler := application.Handlers()
	engine := router.New(timerHandler, taskHandler, historyHandler, settingsHandler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("taskflow listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("run server: %v", err)
	}
}
