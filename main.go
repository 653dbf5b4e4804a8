package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joefrost01/retro-compositor/cmd"
	"github.com/joefrost01/retro-compositor/internal/audio"
	"github.com/joefrost01/retro-compositor/internal/log"
	"github.com/joefrost01/retro-compositor/internal/pipeline"
	"github.com/joefrost01/retro-compositor/internal/sink"
	"github.com/joefrost01/retro-compositor/internal/style"
)

// main is the entry point for the compositor. The program flow has three
// phases:
//
// 1. Startup (cold): parse flags and config, open the audio source and the
// output sink, and handle one-off commands.
//
// 2. Transform (hot): run the pipeline until the source is exhausted or a
// termination signal cancels the context.
//
// 3. Shutdown (cold): the pipeline commits or discards the artifact itself;
// main only reports the result.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	options, err := cmd.ParseArgs()
	if err != nil {
		return err
	}

	// Handle one-off commands that don't require the pipeline
	if options.Command == "styles" {
		listStyles()
		return nil
	}

	// --help and --version exit through here
	if options.InputFile == "" {
		return nil
	}

	if level, ok := log.ParseLevel(options.LogLevel); ok {
		log.SetLevel(level)
	}

	// Ctrl-C cancels the run; the pipeline discards partial output on the
	// way out, so an interrupted run leaves nothing behind.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := audio.Open(options.InputFile)
	if err != nil {
		return err
	}
	defer src.Close()
	log.Infof("source: %s (%d Hz, %d channel(s))", options.InputFile, src.SampleRate(), src.Channels())

	out, err := sink.ForPath(options.Output, options.Video.FPS)
	if err != nil {
		return err
	}

	p, err := pipeline.New(options, out)
	if err != nil {
		return err
	}

	stats, err := p.Run(ctx, src)
	if err != nil {
		return err
	}

	fmt.Printf("%d frames from %.1fs of audio in %s -> %s\n",
		stats.Frames,
		float64(stats.Samples)/float64(stats.SampleRate),
		stats.Elapsed.Round(time.Millisecond),
		options.Output)
	return nil
}

// listStyles prints the style presets with their descriptions.
func listStyles() {
	fmt.Println("Available styles:")
	for _, kind := range style.Catalog() {
		fmt.Printf("  %-8s %s\n", kind, kind.Description())
	}
}
