package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gestorpro/internal/commands"
	"gestorpro/internal/config"
)

func main() {
	// A .env next to the binary can carry the script URLs, matching the
	// original deployment's env-file convention. Missing files are fine.
	_ = godotenv.Load()

	path, err := config.Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := commands.Execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
