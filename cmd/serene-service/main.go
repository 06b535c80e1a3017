package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/imanelbaz22-debug/serene-app/sereneservice"
)

func main() {
	if err := sereneservice.Run(); err != nil {
		log.Error().Err(err).Msg("serene-service exited with error")
		os.Exit(1)
	}
}
