//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with engine.toml from the repository root.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "engine.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed with CPU profiling enabled, the profile lands in profiles/.
func (Run) Profile() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "engine.toml", "-cpuprofile", "profiles"), withStream()); err != nil {
		return err
	}
	return nil
}
