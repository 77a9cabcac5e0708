//go:build mage

package main

import (
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Convert builds the CLI and runs it over the default pdf_file/ folder.
func Convert() error {
	mg.Deps(Init, Build)
	cmd := exec.Command(binPath())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
