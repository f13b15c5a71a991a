//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the vertexgen binary into bin/.
func (Build) Cli() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/vertexgen", "./cmd/vertexgen"), withStream()); err != nil {
		return err
	}
	return nil
}

// Installs vertexgen into GOBIN.
func (Build) Install() error {
	if _, err := executeCmd("go", withArgs("install", "./cmd/vertexgen")); err != nil {
		return err
	}
	return nil
}
