package main

import (
	"os"

	"github.com/subosito/gotenv"
)

func main() {
	gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
