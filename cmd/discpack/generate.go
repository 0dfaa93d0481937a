package main

import (
	"fmt"

	"github.com/handiism/discpack/internal/catalog"
	"github.com/handiism/discpack/internal/config"
	"github.com/handiism/discpack/internal/generate"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	name        string
	offset      int
	zip         bool
	legacyDP    bool
	output      string
	icon        string
	templates   string
	gameVersion string
	dpFormat    int
	rpFormat    int
	only        string
	verbose     bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <discs.yaml>",
		Short: "Generate the datapack and resourcepack",
		Long: `Generate reads the disc list and writes <name>_dp and <name>_rp into the
output directory. Flags override the config file for this run only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := root.loadSettings()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, settings); err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			fsys := afero.NewOsFs()
			entries, err := catalog.Load(fsys, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("♫ %d discs from %s", entries.Len(), args[0])))

			gen := generate.NewGenerator(settings,
				generate.WithFs(fsys),
				generate.WithProgress(func(e generate.ProgressEvent) {
					printEvent(cmd, e, opts.verbose || root.verbosity > 0)
				}),
			)

			var failed []string
			if opts.only != "resourcepack" {
				if status := gen.Datapack(entries); status != generate.StatusSuccess {
					failed = append(failed, "datapack: "+status.String())
				}
			}
			if opts.only != "datapack" {
				if status := gen.Resourcepack(entries); status != generate.StatusSuccess {
					failed = append(failed, "resourcepack: "+status.String())
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("generation failed (%v)", failed)
			}
			fmt.Fprintln(out, successStyle.Render("✨ Done"))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "pack name (lowercase letters, digits, underscores)")
	f.IntVar(&opts.offset, "offset", 0, "custom model data offset")
	f.BoolVar(&opts.zip, "zip", false, "zip both packs and remove their directories")
	f.BoolVar(&opts.legacyDP, "legacy-dp", false, "use the legacy datapack templates")
	f.StringVarP(&opts.output, "output", "o", "", "output directory")
	f.StringVar(&opts.icon, "pack", "", "pack icon image")
	f.StringVar(&opts.templates, "templates", "", "template tree directory")
	f.StringVar(&opts.gameVersion, "game-version", "", "target game version, e.g. 1.20.1 (see 'discpack versions')")
	f.IntVar(&opts.dpFormat, "dp-format", 0, "datapack format, overrides --game-version")
	f.IntVar(&opts.rpFormat, "rp-format", 0, "resourcepack format, overrides --game-version")
	f.StringVar(&opts.only, "only", "", "generate only 'datapack' or 'resourcepack'")
	f.BoolVar(&opts.verbose, "details", false, "show every progress step")

	return cmd
}

// apply copies the flags the user set onto settings.
func (o *generateOptions) apply(cmd *cobra.Command, s *config.Settings) error {
	f := cmd.Flags()

	switch o.only {
	case "", "datapack", "resourcepack":
	default:
		return fmt.Errorf("--only must be 'datapack' or 'resourcepack', got %q", o.only)
	}

	if f.Changed("name") {
		s.Name = o.name
	}
	if f.Changed("offset") {
		s.Offset = o.offset
	}
	if f.Changed("zip") {
		s.Zip = o.zip
	}
	if f.Changed("legacy-dp") {
		s.LegacyDP = o.legacyDP
	}
	if f.Changed("output") {
		s.Output = o.output
	}
	if f.Changed("pack") {
		s.Pack = o.icon
	}
	if f.Changed("templates") {
		s.Templates = o.templates
	}
	if f.Changed("game-version") {
		v, err := config.LookupGameVersion(o.gameVersion)
		if err != nil {
			return err
		}
		s.Version = v
	}
	if f.Changed("dp-format") {
		s.Version.DP = o.dpFormat
	}
	if f.Changed("rp-format") {
		s.Version.RP = o.rpFormat
	}
	return nil
}

func printEvent(cmd *cobra.Command, e generate.ProgressEvent, verbose bool) {
	out := cmd.OutOrStdout()
	switch e.Level {
	case generate.LevelVerbose:
		if verbose {
			fmt.Fprintln(out, dimStyle.Render("  "+e.Message))
		}
	case generate.LevelError:
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("✗ "+e.Message))
	case generate.LevelWarning:
		fmt.Fprintln(out, warningStyle.Render("! "+e.Message))
	case generate.LevelSuccess:
		fmt.Fprintln(out, successStyle.Render("✓ "+e.Message))
	default:
		fmt.Fprintln(out, infoStyle.Render("› "+e.Message))
	}
}
