//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs the lifecycle and frame loop tests only.
func (Test) Engine() error {
	_, err := executeCmd("go", withArgs("test", "-run", "Test", "./engine"), withStream())
	return err
}
