package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autosize/pkg/render"
	"autosize/pkg/session"
)

func newRenderCmd(a *app) *cobra.Command {
	var p pipeline
	var expect, diffOut string
	cmd := &cobra.Command{
		Use:   "render <input.html>",
		Short: "Autosize a page and paint it to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := a.cfg.Render.Output
			if out == "" && expect == "" {
				return errors.New("no output file: pass --out or set render.output")
			}
			s, err := p.run(cmd.Context(), a, cmd, args[0])
			if err != nil {
				return err
			}
			r := s.Paint()
			if out != "" {
				if err := r.SavePNG(out); err != nil {
					return fmt.Errorf("save %s: %w", out, err)
				}
				a.logger.Info("rendered", zap.String("input", args[0]), zap.String("output", out))
			}
			if err := session.WriteReport(cmd.OutOrStdout(), s.Report()); err != nil {
				return err
			}
			if expect != "" {
				return a.compare(r, expect, diffOut)
			}
			return nil
		},
	}
	p.register(cmd)
	cmd.Flags().StringP("out", "o", "", "PNG file to write")
	cmd.Flags().StringVar(&expect, "expect", "", "reference PNG the rendering must match")
	cmd.Flags().StringVar(&diffOut, "diff", "", "where to write a diff image when --expect fails")
	_ = a.v.BindPFlag("render.output", cmd.Flags().Lookup("out"))
	return cmd
}

func (a *app) compare(r *render.Renderer, expect, diffOut string) error {
	ref, err := render.LoadPNG(expect)
	if err != nil {
		return fmt.Errorf("load reference: %w", err)
	}
	opts := render.DefaultCompareOptions()
	opts.Diff = diffOut != ""
	res, err := render.Compare(r.Image(), ref, opts)
	if err != nil {
		return err
	}
	if res.Match {
		return nil
	}
	if res.Diff != nil {
		if err := render.WritePNG(diffOut, res.Diff); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
	}
	return fmt.Errorf("rendering differs from %s: %d of %d pixels, max difference %d",
		expect, res.DifferentPixels, res.TotalPixels, res.MaxDifference)
}
