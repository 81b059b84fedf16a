package main

import (
	"context"

	"github.com/BooleanCube/notebook/internal/compiler"
	"github.com/BooleanCube/notebook/internal/config"
)

// runCompile performs a single one-shot compile.
func runCompile(cfg *config.Config) error {
	_, err := compiler.New(cfg).Run(context.Background())
	return err
}
