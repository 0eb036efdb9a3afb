package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mouseparallax/pkg/render"
)

// errFramesDiffer is returned when rendered frames do not match their
// reference images.
var errFramesDiffer = errors.New("frames differ from reference")

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	outDir      string // overrides frames.dir of the config
	markPointer bool   // draw the pointer position on every frame
	rest        bool   // write the scene at rest before the first sample
	reference   string // directory of expected frames to compare against
	tolerance   int    // per-channel tolerance for reference comparison
}

func newRenderCmd(root *rootOpts) *cobra.Command {
	opts := renderOpts{markPointer: true}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay the pointer path and write one PNG frame per sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), root, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output-dir", "o", "", "directory for frames (default: frames.dir from the config)")
	cmd.Flags().BoolVar(&opts.markPointer, "pointer", opts.markPointer, "mark the pointer position on frames")
	cmd.Flags().BoolVar(&opts.rest, "rest", false, "also write the scene at rest as the first frame")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "compare every frame against the same-named PNG in this directory")
	cmd.Flags().IntVar(&opts.tolerance, "tolerance", render.DefaultCompareOptions().Tolerance, "per-channel tolerance (0-255) for --reference")
	return cmd
}

func runRender(ctx context.Context, root *rootOpts, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, cfg, err := root.loadScene(ctx)
	if err != nil {
		return err
	}
	defer s.Destroy()
	if len(cfg.Pointer) == 0 {
		return errNoPointerPath
	}

	dir := cfg.Frames.Dir
	if opts.outDir != "" {
		dir = opts.outDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}

	cmpOpts := render.DefaultCompareOptions()
	cmpOpts.Tolerance = opts.tolerance

	frame, mismatched := 0, 0
	save := func() error {
		name := fmt.Sprintf("%s%04d.png", cfg.Frames.Prefix, frame)
		path := filepath.Join(dir, name)
		if err := s.SaveFrame(path, opts.markPointer); err != nil {
			return err
		}
		logger.Debug("frame written", "path", path)
		frame++

		if opts.reference == "" {
			return nil
		}
		res, err := render.CompareFile(s.Image(opts.markPointer), filepath.Join(opts.reference, name), cmpOpts)
		if err != nil {
			return err
		}
		if !res.Match {
			mismatched++
			logger.Warn("frame differs from reference", "frame", name,
				"pixels", res.DifferentPixels, "max", res.MaxDifference)
		}
		return nil
	}

	if opts.rest {
		if err := save(); err != nil {
			return err
		}
	}
	for _, p := range cfg.Pointer {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Dispatch(p.X, p.Y)
		if err := save(); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d frames to %s", frame, dir))
	if mismatched > 0 {
		return fmt.Errorf("%d of %d: %w", mismatched, frame, errFramesDiffer)
	}
	return nil
}
