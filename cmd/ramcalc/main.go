package main

import (
	"os"

	"ramcalc/internal/cli"
)

func main() { os.Exit(cli.Main()) }
