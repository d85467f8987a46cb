package main

import (
	"fmt"
	"os"

	"gocaptioner/internal/version"
)

func main() {
	// Minimal CLI entrypoint for the GoCaptioner project.
	// For now, it prints a banner and an optional version.
	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		}
	}

	fmt.Println("GoCaptioner — development skeleton")
	fmt.Printf("Version: %s\n", version.String())
}
