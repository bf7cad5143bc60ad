package main

import (
	"os"

	"github.com/idilsaglam/todomenu/internal/cli"
)

func main() {
	// No subcommands: the root command runs the interactive menu.
	os.Exit(cli.Execute())
}
