// Package main is the entry point for the memberpulse CLI.
package main

import (
	"github.com/joho/godotenv"

	"github.com/hearthside-labs/memberpulse/internal/app"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	app.SetVersion(version)
	app.Execute()
}
