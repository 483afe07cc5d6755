package main

import (
	"log"

	_ "planner/docs"
	"planner/internal/config"
	"planner/internal/server"
)

// @title           Planner API
// @version         1.0
// @description     API for the personal planner: calendar notes, the task board, and accounts.

// @contact.name   API Support
// @contact.email  support@planner-api.com

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
