package main

import (
	"os"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
