package main

import (
	"log"

	"taskboard/internal/config"
	"taskboard/internal/project/server"
)

func main() {
	cfg := config.Load("projectsvc")

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
