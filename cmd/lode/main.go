package main

import (
	"os"

	cmd "github.com/lodehq/lode/internal"
	"github.com/lodehq/lode/internal/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.LogError(err.Error())
		os.Exit(1)
	}
}
