//go:build mage

package main

import (
	"fmt"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build tidies deps then compiles to ./bin/techpay.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building techpay binary...")
	return sh.Run("go", "build", "-o", "bin/techpay", "./cmd/techpay")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.Run("go", "test", "./...")
}

// Lint runs go vet, plus staticcheck when installed.
func Lint() error {
	fmt.Println(">> go vet...")
	if err := sh.Run("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := exec.LookPath("staticcheck"); err != nil {
		fmt.Println(">> staticcheck not found; install with:")
		fmt.Println("   go install honnef.co/go/tools/cmd/staticcheck@latest")
		return nil
	}
	fmt.Println(">> staticcheck...")
	return sh.Run("staticcheck", "./...")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}
