package config

// Core configuration constants that define the boundaries and defaults
// for the compositor pipeline.
const (
	// Default values for the analysis and rendering configuration
	DefaultWindowSize  = 1024      // FFT window, power of two
	DefaultMonoMix     = "average" // Channel reduction strategy
	DefaultWindowFunc  = "hann"    // Spectral leakage window
	DefaultBandCount   = 8         // Perceptual frequency bands
	DefaultAttack      = 0.6       // Fast rise smoothing coefficient
	DefaultRelease     = 0.15      // Slow decay smoothing coefficient
	DefaultWidth       = 640       // Output frame width
	DefaultHeight      = 480       // Output frame height
	DefaultFPS         = 30        // Output frame rate
	DefaultStyle       = "vhs"     // Retro style preset
	DefaultIntensity   = 0.8       // Effect strength (0..1)
	DefaultPaletteSize = 16        // Retro palette color count
	DefaultDither      = "ordered" // Dither mode
	DefaultQueueDepth  = 64        // Bounded pipeline queue length
	DefaultWorkers     = 0         // 0 means one per logical core
	DefaultOutput      = "out.gif" // Output artifact path

	// Processing limits
	MinWindowSize = 64    // Below this the band split degenerates
	MaxWindowSize = 65536 // Sanity bound for memory use
	MinBandCount  = 2
	MaxFPS        = 240
)

// Config holds all runtime configuration options for a compositor run.
// It is constructed via command line flags and/or a YAML configuration file.
type Config struct {
	LogLevel string         `yaml:"log_level"` // Logging level ("debug", "info", "warn", "error").
	Audio    AudioConfig    `yaml:"audio"`     // Decode and windowing settings.
	Analysis AnalysisConfig `yaml:"analysis"`  // Band split and smoothing settings.
	Video    VideoConfig    `yaml:"video"`     // Output raster settings.
	Style    StyleConfig    `yaml:"style"`     // Retro style settings.
	Pipeline PipelineConfig `yaml:"pipeline"`  // Worker pool settings.

	// Populated from the command line only, never from YAML.
	Command    string `yaml:"-"` // One-off subcommand ("styles"), empty for a normal run.
	ConfigFile string `yaml:"-"` // Explicit config file path from --config.
	InputFile  string `yaml:"-"` // Audio file to transform.
	Output     string `yaml:"-"` // Output artifact path (.gif file or PNG directory).
	Verbose    bool   `yaml:"-"` // Forces debug logging.
}

// AudioConfig holds settings for sample decoding and analysis windowing.
type AudioConfig struct {
	WindowSize int    `yaml:"window_size"` // FFT window size in samples (power of two).
	MonoMix    string `yaml:"mono_mix"`    // "average" mixes channels, "first" selects channel 0.
}

// AnalysisConfig holds the band split and temporal smoothing settings.
type AnalysisConfig struct {
	BandCount  int     `yaml:"band_count"`  // Number of logarithmic frequency bands.
	Attack     float64 `yaml:"attack"`      // Smoothing coefficient for rising energy (0..1].
	Release    float64 `yaml:"release"`     // Smoothing coefficient for falling energy (0..1].
	WindowFunc string  `yaml:"window_func"` // FFT window function name (e.g. "hann", "hamming").
}

// VideoConfig holds the output raster dimensions and frame rate.
type VideoConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// StyleConfig holds the retro style selection and its tuning knobs.
type StyleConfig struct {
	Name        string  `yaml:"name"`         // One of "vhs", "film", "vintage", "boards".
	Intensity   float64 `yaml:"intensity"`    // Effect strength scalar (0..1).
	PaletteSize int     `yaml:"palette_size"` // 16 or 256.
	Dither      string  `yaml:"dither"`       // "none", "ordered" or "random".
}

// PipelineConfig holds the worker pool and queue sizing.
type PipelineConfig struct {
	Workers    int `yaml:"workers"`     // Parallel workers; 0 selects GOMAXPROCS.
	QueueDepth int `yaml:"queue_depth"` // Bounded channel depth for back-pressure.
}

// NewConfig creates a new Config instance with default values. This is the
// base configuration before applying a config file or command line flags.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			WindowSize: DefaultWindowSize,
			MonoMix:    DefaultMonoMix,
		},
		Analysis: AnalysisConfig{
			BandCount:  DefaultBandCount,
			Attack:     DefaultAttack,
			Release:    DefaultRelease,
			WindowFunc: DefaultWindowFunc,
		},
		Video: VideoConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Style: StyleConfig{
			Name:        DefaultStyle,
			Intensity:   DefaultIntensity,
			PaletteSize: DefaultPaletteSize,
			Dither:      DefaultDither,
		},
		Pipeline: PipelineConfig{
			Workers:    DefaultWorkers,
			QueueDepth: DefaultQueueDepth,
		},
		Output: DefaultOutput,
	}
}
