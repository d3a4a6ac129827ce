package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/searchtable/internal/cli/commands"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
