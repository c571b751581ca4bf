package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"nesvm/config"
	"nesvm/input"
	"nesvm/nes"
	"nesvm/video"
)

// RunCmd drives a ROM headlessly: no window, no audio output, just the
// Clock's batch loop until the frame budget is spent or the process
// receives an interrupt.
type RunCmd struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM image to run." required:"true" type:"existingfile"`

	Frames     int    `name:"frames" help:"Stop after this many rendered frames. 0 runs until interrupted." default:"0"`
	ConfigPath string `name:"config" help:"Path to a TOML config file." type:"path"`
}

func (r *RunCmd) Run() error {
	rom, err := os.ReadFile(r.RomPath)
	if err != nil {
		return fmt.Errorf("nesvm: %w", err)
	}

	path := r.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.LoadOrDefault(path)

	var sink video.Sink
	if r.Frames > 0 {
		sink = newFrameCounter(r.Frames)
	} else {
		sink = video.Discard{}
	}

	sys, err := nes.New(rom, sink, input.None{})
	if err != nil {
		return fmt.Errorf("nesvm: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sys.Run(cfg.Video.YieldIntervalDots, time.Duration(0))
		stop() // cancels ctx so the interrupt listener below returns
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sys.Stop()
		return nil
	})

	if fc, ok := sink.(*frameCounter); ok {
		g.Go(func() error {
			select {
			case <-fc.done:
				sys.Stop()
			case <-ctx.Done():
			}
			return nil
		})
	}

	return g.Wait()
}

// frameCounter is a video.Sink that stops the run after a fixed number of
// presented frames, closing done exactly once.
type frameCounter struct {
	remaining int
	done      chan struct{}
}

func newFrameCounter(frames int) *frameCounter {
	return &frameCounter{remaining: frames, done: make(chan struct{})}
}

func (f *frameCounter) Present(*image.RGBA) {
	f.remaining--
	if f.remaining <= 0 {
		select {
		case <-f.done:
		default:
			close(f.done)
		}
	}
}
