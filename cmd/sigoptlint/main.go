package main

import (
	"os"

	"github.com/sigopt/sigopt-tools/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
