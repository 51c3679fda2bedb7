// Command autosize-view is an interactive playground: text typed on the
// left feeds a textarea of the page, which is autosized and painted on
// the right.
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"autosize/pkg/config"
	"autosize/pkg/observability"
	"autosize/pkg/resource"
	"autosize/pkg/session"
)

const defaultPage = `<style>textarea { width: 360px; max-height: 300px; }</style>
<body><textarea id="input"></textarea></body>`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile, target string
	cmd := &cobra.Command{
		Use:          "autosize-view [page.html|url]",
		Short:        "Type into an autosized textarea and watch it render",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := config.Prepare(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.Logger)
			defer logger.Sync()

			src := defaultPage
			if len(args) == 1 {
				if src, err = resource.FetchPage(cmd.Context(), resource.NewFetcher(""), args[0]); err != nil {
					return fmt.Errorf("read page: %w", err)
				}
			}
			s, err := session.Open(src, cfg, logger)
			if err != nil {
				if s == nil {
					return err
				}
				logger.Warn("page script failed", zap.Error(err))
			}
			s.AttachAll()
			el, err := s.Page.ElementByID(target)
			if err != nil {
				return fmt.Errorf("textarea #%s: %w", target, err)
			}
			show(s, target, el.Value(), cfg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./autosize.yaml)")
	cmd.Flags().StringVar(&target, "textarea", "input", "id of the textarea the editor drives")
	return cmd
}

// show opens the playground window and blocks until it is closed.
func show(s *session.Session, target, initial string, cfg *config.Config) {
	a := app.New()
	w := a.NewWindow("autosize")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width)+320, float32(cfg.Viewport.Height)+40))

	img := canvas.NewImageFromImage(s.Image())
	img.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel(statusLine(s, target))

	entry := widget.NewMultiLineEntry()
	entry.SetText(initial)
	entry.OnChanged = func(text string) {
		if err := s.SetValue(target, text); err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		img.Image = s.Image()
		img.Refresh()
		status.SetText(statusLine(s, target))
	}

	split := container.NewHSplit(entry, container.NewScroll(img))
	split.Offset = 0.3
	w.SetContent(container.NewBorder(nil, status, nil, nil, split))
	w.Canvas().Focus(entry)
	w.ShowAndRun()
}

// statusLine summarises the driven textarea.
func statusLine(s *session.Session, target string) string {
	want := "textarea#" + target
	for _, r := range s.Report() {
		if r.Element != want {
			continue
		}
		if !r.Tracked {
			return want + " is not autosized"
		}
		return fmt.Sprintf("%s  height %s  overflow-y %s  scrollHeight %g  (%s)",
			want, r.Height, r.OverflowY, r.ScrollHeight, r.State)
	}
	return want + " not found"
}
