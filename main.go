package main

import (
	"os"

	"matcha/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
