//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}

// Runs the scene and platform tests only.
func (Test) Core() error {
	_, err := executeCmd("go", withArgs("test", "-count=1", "./engine/scene/...", "./engine/platform/..."), withStream())
	return err
}
