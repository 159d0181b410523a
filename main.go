package main

import (
	"os"

	"github.com/hephbuild/hsize/internal/cmd"
)

func main() {
	code := cmd.Execute()

	os.Exit(code)
}
