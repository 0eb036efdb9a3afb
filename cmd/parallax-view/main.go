package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mouseparallax/pkg/config"
	"mouseparallax/pkg/scene"
)

// tickInterval is how often events held back by the throttle are flushed.
const tickInterval = 16 * time.Millisecond

func main() {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "parallax-view",
		Short:        "Open a parallax scene in a window and move it with the mouse",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			return run(configPath, logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scene config file (.yaml, .yml or .toml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	s, err := scene.Load(cfg, scene.WithLogger(logger), scene.WithLiveClock(time.Now))
	if err != nil {
		return err
	}
	defer s.Destroy()

	a := app.New()
	w := a.NewWindow("parallax: " + cfg.PagePath())

	status := widget.NewLabel("Move the mouse over the scene")
	view := newSceneView(s, cfg.Viewport, func(x, y float64) {
		status.SetText(fmt.Sprintf("pointer %.0f, %.0f", x, y))
		logger.Debug("pointer", "x", x, "y", y, "items", s.Items())
	})

	ticker := time.NewTicker(tickInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fyne.Do(view.tick)
			}
		}
	}()
	w.SetOnClosed(func() {
		ticker.Stop()
		close(done)
	})

	w.SetContent(container.NewBorder(nil, status, nil, nil, view))
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)+status.MinSize().Height))
	w.ShowAndRun()
	return nil
}
