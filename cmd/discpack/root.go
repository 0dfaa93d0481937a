package main

import (
	"fmt"

	"github.com/handiism/discpack/internal/config"
	"github.com/handiism/discpack/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbosity  int
	configPath string
}

// NewRootCmd builds the discpack command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "discpack",
		Short: "Generate custom music disc datapacks and resourcepacks",
		Long: `discpack turns a list of tracks and textures into a datapack that adds
custom music discs and the resourcepack that plays and shows them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/discpack/config.toml)")

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionsCmd())

	return rootCmd
}

// loadSettings reads the config file named by --config, or the default one.
func (o *rootOptions) loadSettings() (*config.Settings, error) {
	path, err := o.settingsPath()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return settings, nil
}

func (o *rootOptions) settingsPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("locate config: %w", err)
	}
	return path, nil
}

func printErr(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error: "+err.Error()))
}
