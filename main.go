package main

import (
	"fmt"
	"os"

	"todo_automation/presentation/terminal"
)

func main() {
	if err := terminal.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
