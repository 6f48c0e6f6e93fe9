package main

import (
	"os"

	"github.com/bnema/snip/internal/cli"
	"github.com/bnema/snip/internal/infrastructure/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error.Printf("%v", err)
		os.Exit(1)
	}
}
