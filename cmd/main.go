package main

import (
	"os"

	"github.com/wajih79/kia-python-game/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
