//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

var Default = Test

// Regenerates the descriptor methods of every annotated package.
func Generate() error {
	fmt.Println("Generating vertex descriptors...")
	if _, err := executeCmd("go", withArgs("generate", "./...")); err != nil {
		return err
	}
	return nil
}

// Regenerates, then runs the whole test suite.
func Test() error {
	mg.Deps(Generate)
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
