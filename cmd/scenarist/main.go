package main

import (
	"fmt"
	"os"

	"github.com/artpar/scenarist/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(fmt.Sprintf("%s (%s, %s)", version, commit, date))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
