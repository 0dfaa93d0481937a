package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/discpack/internal/config"
	"github.com/handiism/discpack/internal/logging"
	"github.com/handiism/discpack/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default is $XDG_CONFIG_HOME/discpack/config.toml)")
	verbosity := flag.Int("v", 0, "log verbosity written to the log file")
	flag.Parse()

	logging.SetupFileLogger(*verbosity)

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
