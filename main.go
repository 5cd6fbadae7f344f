package main

import (
	"github.com/stridepath/goal_service/config"
	"github.com/stridepath/goal_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
