package main

import (
	"os"

	"github.com/dtroode/lostfound/cmd/profile/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
