package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/nebulavault/server/internal/api"
	"github.com/nebulavault/server/internal/config"
	"github.com/nebulavault/server/internal/repositories"
)

func main() {
	// Connect to database
	repositories.ConnectDatabase()

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Nebula Vault server on port: %s", config.Envs.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", config.Envs.Port, err)
	}
}
