package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mouseparallax/pkg/config"
	"mouseparallax/pkg/scene"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version,
// typically from values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by every subcommand.
type rootOpts struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree. Logging goes to the command's
// error stream, results to its output stream.
func NewRootCommand() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "parallax",
		Short:        "Drive mouse parallax scenes from recorded or live pointer input",
		Long:         `parallax loads an HTML scene, moves its layers with the pointer the way a browser would, and reports or renders the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("parallax %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "scene config file (.yaml, .yml or .toml)")

	root.AddCommand(newTraceCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newFollowCmd(opts))

	return root
}

// Execute runs the CLI against os.Args.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	root.SetErr(os.Stderr)
	return root.ExecuteContext(ctx)
}

// loadScene reads the config named by --config and builds its scene.
func (o *rootOpts) loadScene(ctx context.Context, sceneOpts ...scene.Option) (*scene.Scene, config.Config, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger.Debug("config loaded", "path", o.configPath, "page", cfg.PagePath())

	sceneOpts = append([]scene.Option{scene.WithLogger(logger)}, sceneOpts...)
	s, err := scene.Load(cfg, sceneOpts...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}
