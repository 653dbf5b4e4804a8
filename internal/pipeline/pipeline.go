// Package pipeline orchestrates the audio-to-frames transform: decoding,
// windowed spectral analysis, feature mapping, parallel rendering and
// ordered delivery to the output sink.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joefrost01/retro-compositor/internal/analysis"
	"github.com/joefrost01/retro-compositor/internal/audio"
	"github.com/joefrost01/retro-compositor/internal/config"
	"github.com/joefrost01/retro-compositor/internal/log"
	"github.com/joefrost01/retro-compositor/internal/render"
	"github.com/joefrost01/retro-compositor/internal/segment"
	"github.com/joefrost01/retro-compositor/internal/sink"
	"github.com/joefrost01/retro-compositor/internal/style"
)

// State tracks pipeline progress through a run.
type State int32

// Run states. Failed is reachable from any state.
const (
	StateIdle State = iota
	StateDecoding
	StateRendering // analysis and rendering run concurrently
	StateFinalizing
	StateDone
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDecoding:
		return "decoding"
	case StateRendering:
		return "analyzing+rendering"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Frames     int
	Samples    int
	SampleRate int
	Elapsed    time.Duration
}

// bandFrame carries one window's raw band energies between the parallel
// analysis stage and the sequential smoothing pass.
type bandFrame struct {
	index    int
	energies []float64
}

// Pipeline wires the stages together for one or more runs over the same
// configuration. Smoothing state is per-run and reset at start.
type Pipeline struct {
	cfg      *config.Config
	renderer *render.Renderer
	out      sink.Sink

	windowFn analysis.WindowFunc
	mixMode  audio.MixMode
	state    atomic.Int32

	// beforeAnalyze, when set, runs before each window's analysis. Tests use
	// it to inject worker failures.
	beforeAnalyze func(index int) error
}

// New builds a Pipeline from a validated configuration and an output sink.
func New(cfg *config.Config, out sink.Sink) (*Pipeline, error) {
	kind, err := style.ParseKind(cfg.Style.Name)
	if err != nil {
		return nil, err
	}
	dither, err := style.ParseDitherMode(cfg.Style.Dither)
	if err != nil {
		return nil, err
	}
	windowFn, err := analysis.ParseWindowFunc(cfg.Analysis.WindowFunc)
	if err != nil {
		return nil, err
	}
	mixMode, err := audio.ParseMixMode(cfg.Audio.MonoMix)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(cfg.Video.Width, cfg.Video.Height, kind, cfg.Style.PaletteSize, dither)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		renderer: renderer,
		out:      out,
		windowFn: windowFn,
		mixMode:  mixMode,
	}
	p.state.Store(int32(StateIdle))
	return p, nil
}

// State returns the current run state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
	log.Debugf("pipeline: state -> %s", s)
}

func (p *Pipeline) workers() int {
	if n := p.cfg.Pipeline.Workers; n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Run consumes src to completion and delivers the ordered frame sequence to
// the sink. On the first worker error it cancels outstanding work, discards
// partial output and returns that error; the sink is committed only on full
// success.
func (p *Pipeline) Run(ctx context.Context, src audio.Source) (Stats, error) {
	start := time.Now()
	stats := Stats{SampleRate: src.SampleRate()}

	p.setState(StateDecoding)

	hop := segment.Hop(src.SampleRate(), p.cfg.Video.FPS)
	seg, err := segment.New(p.cfg.Audio.WindowSize, hop)
	if err != nil {
		p.setState(StateFailed)
		return stats, err
	}
	bandMap, err := analysis.NewBandMap(p.cfg.Analysis.BandCount, p.cfg.Audio.WindowSize, src.SampleRate())
	if err != nil {
		p.setState(StateFailed)
		return stats, err
	}
	smoother := analysis.NewSmoother(p.cfg.Analysis.BandCount, p.cfg.Analysis.Attack, p.cfg.Analysis.Release)
	smoother.Reset()
	mapper := style.NewMapper(p.cfg.Style.Intensity)
	mixer := audio.NewMonoMixer(src, p.mixMode)

	workers := p.workers()
	depth := p.cfg.Pipeline.QueueDepth
	log.Infof("pipeline: %d Hz input, hop %d, %d workers", src.SampleRate(), hop, workers)

	windows := make(chan segment.Window, depth)
	energies := make(chan bandFrame, depth)
	params := make(chan style.VisualParams, depth)
	frames := make(chan *render.Frame, depth)

	g, ctx := errgroup.WithContext(ctx)

	// Stage 1: decode and segment. Single producer; the bounded windows
	// channel provides back-pressure against a fast decoder.
	var totalSamples int64
	g.Go(func() error {
		defer close(windows)
		buf := make([]float64, 8192)
		for {
			n, readErr := mixer.ReadMono(buf)
			if n > 0 {
				seg.Push(buf[:n])
				if err := drainWindows(ctx, seg, windows); err != nil {
					return err
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				return fmt.Errorf("%w: %v", audio.ErrDecodeFailed, readErr)
			}
		}
		seg.Close()
		atomic.StoreInt64(&totalSamples, int64(seg.Total()))
		return drainWindows(ctx, seg, windows)
	})

	// Stage 2: parallel spectral analysis and band energies. Each worker
	// owns its analyzer and scratch buffers; results carry their window
	// index so order can be restored downstream.
	var analysisWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		analysisWG.Add(1)
		g.Go(func() error {
			defer analysisWG.Done()
			analyzer, err := analysis.NewAnalyzer(p.cfg.Audio.WindowSize, p.windowFn)
			if err != nil {
				return err
			}
			mags := make([]float64, analyzer.BinCount())
			for w := range windows {
				if err := ctx.Err(); err != nil {
					return err
				}
				if p.beforeAnalyze != nil {
					if err := p.beforeAnalyze(w.Index); err != nil {
						return err
					}
				}
				analyzer.Magnitudes(w.Samples, mags)
				bf := bandFrame{index: w.Index, energies: bandMap.Energies(mags, nil)}
				select {
				case energies <- bf:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		analysisWG.Wait()
		close(energies)
	}()

	// Stage 3: the sequential smoothing pass. The recurrence depends on the
	// previous frame, so this stage must never be parallelized; it restores
	// window order before applying it.
	g.Go(func() error {
		defer close(params)
		pending := make(map[int][]float64)
		next := 0
		var prev style.VisualParams
		for bf := range energies {
			pending[bf.index] = bf.energies
			for {
				e, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				vp := mapper.Map(next, smoother.Apply(e), prev)
				prev = vp
				select {
				case params <- vp:
				case <-ctx.Done():
					return ctx.Err()
				}
				next++
			}
		}
		if len(pending) > 0 {
			return fmt.Errorf("pipeline: %d band frames stranded before index %d", len(pending), next)
		}
		return nil
	})

	// Stage 4: parallel rendering.
	var renderWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		renderWG.Add(1)
		g.Go(func() error {
			defer renderWG.Done()
			for vp := range params {
				if err := ctx.Err(); err != nil {
					return err
				}
				f := p.renderer.Render(vp)
				select {
				case frames <- f:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		renderWG.Wait()
		close(frames)
	}()

	// Stage 5: ordered collection. Frames complete in any order; the sink
	// sees them strictly by sequence index.
	var written int64
	g.Go(func() error {
		pending := make(map[int]*render.Frame)
		next := 0
		for f := range frames {
			pending[f.Index] = f
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := p.out.WriteFrame(ready.Index, ready.Image); err != nil {
					return err
				}
				atomic.AddInt64(&written, 1)
				next++
			}
		}
		if len(pending) > 0 {
			return fmt.Errorf("pipeline: %d frames stranded before index %d", len(pending), next)
		}
		return nil
	})

	p.setState(StateRendering)

	if err := g.Wait(); err != nil {
		p.setState(StateFailed)
		if derr := p.out.Discard(); derr != nil {
			log.Warnf("pipeline: discarding partial output: %v", derr)
		}
		return stats, err
	}

	p.setState(StateFinalizing)
	if err := p.out.Close(); err != nil {
		p.setState(StateFailed)
		return stats, err
	}

	stats.Frames = int(atomic.LoadInt64(&written))
	stats.Samples = int(atomic.LoadInt64(&totalSamples))
	stats.Elapsed = time.Since(start)
	p.setState(StateDone)
	log.Infof("pipeline: %d frames from %d samples in %s", stats.Frames, stats.Samples, stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}

// drainWindows forwards every currently available window to out, honoring
// cancellation.
func drainWindows(ctx context.Context, seg *segment.Segmenter, out chan<- segment.Window) error {
	for {
		w, ok := seg.Next()
		if !ok {
			return nil
		}
		select {
		case out <- w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
