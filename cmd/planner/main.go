package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"planner/internal/client"
	"planner/internal/tui"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("PLANNER_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c := client.New(baseURL)
	if err := tui.Run(c); err != nil {
		log.Fatalf("❌ UI exited with error: %v", err)
	}
}
