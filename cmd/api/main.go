package main

import (
	"log"

	"petmatch-backend/internal/bootstrap"
	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s env=%s", addr, cfg.Env)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
