package main

import (
	"log"

	"taskboard/internal/config"
	"taskboard/internal/task/server"
)

func main() {
	cfg := config.Load("tasksvc")

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
