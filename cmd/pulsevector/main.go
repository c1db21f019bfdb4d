package main

import (
	"errors"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Bluebull7/pulsevector-sim/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		if errors.Is(err, commands.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
