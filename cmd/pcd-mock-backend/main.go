package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/internal/config"
	"github.com/Naufalpc11/Wood-Classification/mockbackend"
)

func main() {
	config.InitLogger()

	cfg, err := mockbackend.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	if err := mockbackend.Run(cfg); err != nil {
		log.Error().Err(err).Msg("pcd-mock-backend exited with error")
		os.Exit(1)
	}
}
