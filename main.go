package main

import (
	"os"

	"github.com/threadlint/threadlint/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
