package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/nroussel/dockhand/internal/cmd"
)

func main() {
	outputDir := "./docs/commands"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if err := doc.GenMarkdownTree(cmd.GetRootCmd(), outputDir); err != nil {
		log.Fatalf("Failed to generate documentation: %v", err)
	}

	log.Printf("Documentation generated in %s", outputDir)
}
