package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"werewolf/internal/config"
	"werewolf/internal/engine"
	"werewolf/internal/handlers"
	"werewolf/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	log.Printf("Loaded configuration: night %s, day %s", cfg.Game.NightDuration, cfg.Game.DayDuration)

	if cfg.Game.PresetFile != "" {
		if err := config.LoadPresetFile(cfg.Game.PresetFile); err != nil {
			log.Fatal("Failed to load preset file: ", err)
		}
		log.Printf("Loaded role presets from %s", cfg.Game.PresetFile)
	}

	s := store.NewMemoryStore()
	clock := engine.NewPhaseClock()
	ctrl := engine.New(s, clock, cfg)
	h := handlers.New(s, ctrl, cfg)

	r := handlers.SetupRouter(h, cfg, nil)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout, // 0 for SSE support
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	clock.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server gracefully stopped")
}
