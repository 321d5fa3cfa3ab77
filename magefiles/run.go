//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the default configuration.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-log-level", "debug"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed straight into play mode.
func (Run) Play() error {
	fmt.Println("Run engine in play mode...")
	if _, err := executeCmd("go", withArgs("run", ".", "-play"), withStream()); err != nil {
		return err
	}
	return nil
}
