package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
)

func main() {
	config.LoadDotEnv()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <parish-or-group-name>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	name := os.Args[1]
	key := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret).GenerateHMACKey(name)
	fmt.Printf("Generated Key for %s:\n%s\n", name, key)
}
