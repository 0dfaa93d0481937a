package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/handiism/discpack/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the discpack config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := root.settingsPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.DefaultSettings().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := root.loadSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name       %s\n", settings.Name)
			fmt.Fprintf(out, "version    dp=%d rp=%d %s\n", settings.Version.DP, settings.Version.RP, config.GameVersionName(settings.Version))
			fmt.Fprintf(out, "offset     %d\n", settings.Offset)
			fmt.Fprintf(out, "pack       %s\n", settings.Pack)
			fmt.Fprintf(out, "zip        %t\n", settings.Zip)
			fmt.Fprintf(out, "legacy_dp  %t (templates: %s)\n", settings.LegacyDP, settings.TemplateSet())
			fmt.Fprintf(out, "output     %s\n", settings.Output)
			fmt.Fprintf(out, "templates  %s\n", settings.Templates)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List supported game versions and their pack formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, v := range config.GameVersions {
				line := fmt.Sprintf("%-8s dp=%-3d rp=%-3d", v.Name, v.Version.DP, v.Version.RP)
				if v.Version.IsLegacy() {
					line += dimStyle.Render(" legacy datapack, requires --templates")
				}
				fmt.Fprintln(out, line)
			}
		},
	}
}
