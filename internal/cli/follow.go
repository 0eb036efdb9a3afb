package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mouseparallax/pkg/event"
	"mouseparallax/pkg/pointer"
	"mouseparallax/pkg/scene"
)

type followOpts struct {
	originX, originY float64       // screen position of the scene's top-left corner
	interval         time.Duration // pointer polling period
	duration         time.Duration // 0 runs until interrupted
	frames           bool          // write a frame for every pointer move
}

func newFollowCmd(root *rootOpts) *cobra.Command {
	opts := followOpts{interval: pointer.DefaultInterval}

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Drive the scene from the desktop pointer (X11)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd.Context(), root, &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.originX, "origin-x", 0, "screen x of the scene origin")
	cmd.Flags().Float64Var(&opts.originY, "origin-y", 0, "screen y of the scene origin")
	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "pointer polling interval")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "stop after this long (0 = until interrupted)")
	cmd.Flags().BoolVar(&opts.frames, "frames", false, "write a frame for every pointer move")
	return cmd
}

func runFollow(ctx context.Context, root *rootOpts, opts *followOpts) error {
	logger := loggerFromContext(ctx)

	s, cfg, err := root.loadScene(ctx, scene.WithLiveClock(time.Now))
	if err != nil {
		return err
	}
	defer s.Destroy()

	x11, err := pointer.NewX11()
	if err != nil {
		return err
	}
	defer x11.Close()

	var target pointer.Dispatcher = s
	if opts.frames {
		if err := os.MkdirAll(cfg.Frames.Dir, 0o755); err != nil {
			return fmt.Errorf("creating frame directory: %w", err)
		}
		target = &frameWriter{scene: s, dir: cfg.Frames.Dir, prefix: cfg.Frames.Prefix, logger: logger}
	}

	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	src := pointer.NewSource(x11, target,
		pointer.WithInterval(opts.interval),
		pointer.WithOrigin(opts.originX, opts.originY),
		pointer.WithLogger(logger.WithPrefix("pointer")),
	)
	logger.Info("following pointer", "origin", fmt.Sprintf("%g,%g", opts.originX, opts.originY))
	return src.Run(ctx)
}

// frameWriter saves a frame after every event it forwards to the scene
// and after every tick that moved something.
type frameWriter struct {
	scene  *scene.Scene
	dir    string
	prefix string
	logger *log.Logger
	n      int
}

func (f *frameWriter) DispatchEvent(ev event.Event) int {
	handled := f.scene.DispatchEvent(ev)
	f.save()
	return handled
}

// Tick saves a frame when a held-back event was delivered.
func (f *frameWriter) Tick() int {
	n := f.scene.Tick()
	if n > 0 {
		f.save()
	}
	return n
}

func (f *frameWriter) save() {
	path := filepath.Join(f.dir, fmt.Sprintf("%s%04d.png", f.prefix, f.n))
	if err := f.scene.SaveFrame(path, true); err != nil {
		f.logger.Error("frame not written", "path", path, "err", err)
		return
	}
	f.n++
}
