package main

import (
	"os"

	"symres/cmd"
)

func main() {
	if !cmd.Execute() {
		os.Exit(1)
	}
}
