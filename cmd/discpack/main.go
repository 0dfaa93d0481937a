package main

import (
	"os"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printErr(rootCmd, err)
		os.Exit(1)
	}
}
