package main

import (
	"flag"
	"os"

	"github.com/notesapp/notes-backend/internal/logger"
	"github.com/notesapp/notes-backend/notesservice"
)

func main() {
	// Optional build-target flag override (local | cloud-dev | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud-dev, cloud)")
	flag.Parse()

	if *buildTarget != "" {
		_ = os.Setenv("NOTES_BACKEND_BUILD_TARGET", *buildTarget)
	}

	if err := notesservice.Run(); err != nil {
		log := logger.New("notes-service")
		log.Fatal().Err(err).Msg("service exited with error")
	}
}
