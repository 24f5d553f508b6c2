package main

import (
	"os"

	"qaeval/cmd/qaeval/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
