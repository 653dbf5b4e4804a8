package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joefrost01/retro-compositor/internal/config"
	"github.com/joefrost01/retro-compositor/pkg/build"
)

// ParseArgs builds the run configuration from, in increasing precedence:
// built-in defaults, an optional YAML file, RETRO_* environment variables and
// command line flags. The returned config is fully validated unless a one-off
// subcommand was selected.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.Get()

	// The config file must be loaded before flag registration so that flag
	// defaults (and therefore --help output) reflect its values, and so that
	// explicit flags override it.
	options, err := config.LoadConfig(configPathArg(os.Args[1:]))
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name + " [flags] <audio-file>",
		Short:         "Render an audio file into retro-styled visual frames",
		Version:       buildInfo.VersionString(),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.InputFile = args[0]
			return nil
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Styles command
	stylesCmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available style presets",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "styles"
		},
	}
	rootCmd.AddCommand(stylesCmd)

	// Output Configuration
	rootCmd.PersistentFlags().StringVarP(&options.Output, "output", "o", options.Output,
		"Output artifact: a .gif file or a directory for a PNG sequence")
	rootCmd.PersistentFlags().StringVarP(&options.ConfigFile, "config", "f", "",
		"Path to a YAML configuration file")

	// Style Configuration
	rootCmd.PersistentFlags().StringVarP(&options.Style.Name, "style", "s", options.Style.Name,
		"Style preset. Use the 'styles' command to see what is available.")
	rootCmd.PersistentFlags().Float64VarP(&options.Style.Intensity, "intensity", "i", options.Style.Intensity,
		"Effect strength between 0 and 1")
	rootCmd.PersistentFlags().IntVarP(&options.Style.PaletteSize, "palette", "p", options.Style.PaletteSize,
		"Palette color count (16 or 256)")
	rootCmd.PersistentFlags().StringVarP(&options.Style.Dither, "dither", "d", options.Style.Dither,
		"Dither mode (none, ordered, random)")

	// Video Configuration
	rootCmd.PersistentFlags().IntVar(&options.Video.Width, "width", options.Video.Width,
		"Output frame width in pixels (must be even)")
	rootCmd.PersistentFlags().IntVar(&options.Video.Height, "height", options.Video.Height,
		"Output frame height in pixels (must be even)")
	rootCmd.PersistentFlags().IntVar(&options.Video.FPS, "fps", options.Video.FPS,
		"Output frame rate")

	// Analysis Configuration
	rootCmd.PersistentFlags().IntVarP(&options.Audio.WindowSize, "window-size", "w", options.Audio.WindowSize,
		"FFT window size in samples (power of two)")
	rootCmd.PersistentFlags().IntVarP(&options.Analysis.BandCount, "bands", "b", options.Analysis.BandCount,
		"Number of frequency bands driving the visuals")

	// Pipeline Configuration
	rootCmd.PersistentFlags().IntVarP(&options.Pipeline.Workers, "workers", "j", options.Pipeline.Workers,
		"Parallel workers (0 selects one per logical core)")

	// Debug Configuration
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false,
		"Show verbose output")

	// Execute the CLI
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if options.Verbose {
		options.LogLevel = "debug"
	}

	// One-off subcommands and --help/--version runs skip run validation.
	if options.Command != "" || options.InputFile == "" {
		return options, nil
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// configPathArg extracts the --config/-f value ahead of cobra parsing, since
// the file has to load before flag defaults are bound.
func configPathArg(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-f":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-f="):
			return strings.TrimPrefix(arg, "-f=")
		}
	}
	return ""
}
