package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mouseparallax/pkg/config"
	"mouseparallax/pkg/scene"
)

const (
	formatYAML = "yaml"
	formatTOML = "toml"
)

// errNoPointerPath is returned by commands that replay the configured
// pointer path when the config has none.
var errNoPointerPath = errors.New("config has no pointer samples")

type traceStep struct {
	Pointer config.Point      `yaml:"pointer" toml:"pointer"`
	Items   []scene.ItemState `yaml:"items" toml:"items"`
}

type traceDoc struct {
	Steps []traceStep `yaml:"steps" toml:"steps"`
}

func newTraceCmd(root *rootOpts) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Replay the pointer path and print item positions after every sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatYAML && format != formatTOML {
				return fmt.Errorf("invalid format %q: want %s or %s", format, formatYAML, formatTOML)
			}
			s, cfg, err := root.loadScene(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Destroy()

			doc, err := trace(s, cfg.Pointer)
			if err != nil {
				return err
			}
			return writeTrace(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml, toml")
	return cmd
}

func trace(s *scene.Scene, path []config.Point) (traceDoc, error) {
	if len(path) == 0 {
		return traceDoc{}, errNoPointerPath
	}
	var doc traceDoc
	for _, p := range path {
		s.Dispatch(p.X, p.Y)
		doc.Steps = append(doc.Steps, traceStep{Pointer: p, Items: s.Items()})
	}
	return doc, nil
}

func writeTrace(w io.Writer, doc traceDoc, format string) error {
	if format == formatTOML {
		return toml.NewEncoder(w).Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
