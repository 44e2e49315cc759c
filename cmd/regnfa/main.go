package main

import (
	"os"

	"github.com/coregx/regnfa/cmd/regnfa/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
