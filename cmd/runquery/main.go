package main

import (
	"fmt"
	"os"

	"github.com/teranos/runquery/cmd/runquery/commands"
	"github.com/teranos/runquery/logger"
)

func main() {
	defer logger.Cleanup()
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
