package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/nroussel/dockhand/internal/cmd"
	"github.com/nroussel/dockhand/internal/exit"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Error(err)
	}
	cmd.CloseLog()
	os.Exit(exit.Code(err))
}
