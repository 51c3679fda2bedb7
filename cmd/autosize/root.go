package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"autosize/pkg/config"
	"autosize/pkg/observability"
	"autosize/pkg/resource"
	"autosize/pkg/session"
)

// app carries what the root command prepares for its subcommands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: observability.Nop()}
	var cfgFile string

	root := &cobra.Command{
		Use:          "autosize",
		Short:        "Grow textareas to fit their content",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Prepare(a.v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = observability.NewLogger(cfg.Logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./autosize.yaml)")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "console", "log format: console or json")
	flags.Bool("stale-overflow-reflow", false, "simulate an engine that does not re-wrap text when only overflow-y changes")
	flags.Bool("detached-dispatch-error", false, "simulate an engine that fails dispatch on detached elements")
	flags.Bool("no-computed-style", false, "simulate a host without getComputedStyle")
	flags.Bool("keyup-fallback", false, "also resize on keyup")
	for key, name := range map[string]string{
		"logger.level":                   "log-level",
		"logger.format":                  "log-format",
		"engine.stale_overflow_reflow":   "stale-overflow-reflow",
		"engine.detached_dispatch_error": "detached-dispatch-error",
		"engine.no_computed_style":       "no-computed-style",
		"engine.keyup_fallback":          "keyup-fallback",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newRenderCmd(a), newReportCmd(a), newBoxesCmd(a))
	return root
}

// pipeline holds the flags shared by the page commands.
type pipeline struct {
	noAttach bool
	edits    []string
	viewport string
}

func (p *pipeline) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.noAttach, "no-attach", false, "do not attach every textarea, leave it to the page scripts")
	cmd.Flags().StringArrayVar(&p.edits, "type", nil, `type into a textarea after attaching, as id=text (\n and \b escapes allowed)`)
	cmd.Flags().StringVar(&p.viewport, "viewport", "", "resize the viewport to WxH after editing")
}

// run opens the page at path and applies the pipeline.
func (p *pipeline) run(ctx context.Context, a *app, cmd *cobra.Command, path string) (*session.Session, error) {
	src, err := readInput(ctx, cmd, path)
	if err != nil {
		return nil, err
	}
	s, err := session.Open(src, a.cfg, a.logger)
	if err != nil {
		if s == nil {
			return nil, err
		}
		a.logger.Warn("page script failed", zap.Error(err))
	}
	if !p.noAttach {
		s.AttachAll()
	}
	for _, raw := range p.edits {
		edit, err := session.ParseEdit(raw)
		if err != nil {
			return nil, err
		}
		if err := s.Type(edit); err != nil {
			return nil, fmt.Errorf("type into #%s: %w", edit.ID, err)
		}
	}
	if p.viewport != "" {
		w, h, err := session.ParseViewport(p.viewport)
		if err != nil {
			return nil, err
		}
		if err := s.Resize(w, h); err != nil {
			return nil, fmt.Errorf("resize viewport: %w", err)
		}
	}
	return s, nil
}

// readInput reads a page from a file, an http(s) URL or, for "-", stdin.
func readInput(ctx context.Context, cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		return string(src), err
	}
	src, err := resource.FetchPage(ctx, resource.NewFetcher(""), path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return src, nil
}
