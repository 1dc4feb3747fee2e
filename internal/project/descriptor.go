// Package project inspects a checkout for a recognized container build
// descriptor.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind identifies how a project gets deployed.
type Kind int

const (
	// KindCompose deploys through a multi-service compose manifest.
	KindCompose Kind = iota
	// KindDockerfile builds a single image and runs one container.
	KindDockerfile
)

// manifestNames lists the accepted compose manifest names, in lookup order.
var manifestNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Descriptor describes the build descriptor found in a checkout.
type Descriptor struct {
	Kind     Kind
	Manifest string // manifest file name when Kind is KindCompose
}

// Detect checks dir for a compose manifest or a Dockerfile. A manifest takes
// precedence over a Dockerfile. File contents are not validated.
func Detect(dir string) (*Descriptor, error) {
	for _, name := range manifestNames {
		if fileExists(filepath.Join(dir, name)) {
			return &Descriptor{Kind: KindCompose, Manifest: name}, nil
		}
	}
	if fileExists(filepath.Join(dir, "Dockerfile")) {
		return &Descriptor{Kind: KindDockerfile}, nil
	}
	return nil, fmt.Errorf("no Dockerfile or compose manifest found in %s", dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
