package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/nikbrunner/bmorg/internal/storage"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	storage.LoadEnv()

	rootCmd := NewRootCmd(version)
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
