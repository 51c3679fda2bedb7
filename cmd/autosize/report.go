package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"autosize/pkg/session"
)

// maxConcurrentPages bounds how many pages report loads at once.
const maxConcurrentPages = 4

func newReportCmd(a *app) *cobra.Command {
	var p pipeline
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report <input.html>...",
		Short: "Autosize pages and print the resulting textarea geometry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := p.reportAll(a, cmd, args)
			if err != nil {
				return err
			}
			if asJSON {
				var all []session.TextareaReport
				for _, r := range reports {
					all = append(all, r...)
				}
				return session.WriteReportJSON(cmd.OutOrStdout(), all)
			}
			for i, r := range reports {
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", args[i])
				}
				if err := session.WriteReport(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	p.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// reportAll runs the pipeline on every input concurrently. Reports come
// back in input order; with several inputs each row names its page.
func (p *pipeline) reportAll(a *app, cmd *cobra.Command, inputs []string) ([][]session.TextareaReport, error) {
	reports := make([][]session.TextareaReport, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentPages)
	for i, input := range inputs {
		g.Go(func() error {
			s, err := p.run(ctx, a, cmd, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			r := s.Report()
			if len(inputs) > 1 {
				for j := range r {
					r[j].Page = input
				}
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
