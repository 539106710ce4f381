package main

import (
	"fmt"
	"os"

	"github.com/stemracing/regulations/backend/go-services/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
