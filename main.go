package main

import (
	"github.com/nathanaelandrews/genTile/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
