// Package session runs the load, script, autosize and paint pipeline
// shared by the command line tool and the viewer.
package session

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"autosize/pkg/autosize"
	"autosize/pkg/config"
	"autosize/pkg/js"
	"autosize/pkg/page"
	"autosize/pkg/render"
	"autosize/pkg/text"
)

type Session struct {
	Page   *page.Page
	Engine *js.Engine

	cfg    *config.Config
	logger *zap.Logger
}

// Open loads src and runs its scripts. Script failures are returned with
// the session so callers may carry on with a partially scripted page.
func Open(src string, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	opts := cfg.PageOptions(logger.Named("page"))
	if cfg.Render.FontsDir != "" {
		opts.Measurer = text.NewFontMeasurer(text.FontsIn(cfg.Render.FontsDir))
	}
	p, err := page.Load(src, opts)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	var asOpts []autosize.Option
	if cfg.Engine.KeyupFallback {
		asOpts = append(asOpts, autosize.WithKeyupFallback())
	}
	s := &Session{
		Page:   p,
		Engine: js.New(p, logger.Named("js"), asOpts...),
		cfg:    cfg,
		logger: logger,
	}
	if err := s.Engine.Execute(); err != nil {
		return s, fmt.Errorf("run scripts: %w", err)
	}
	return s, nil
}

func (s *Session) Autosizer() *autosize.Autosizer {
	return s.Engine.Autosizer()
}

// AttachAll attaches every textarea in the document.
func (s *Session) AttachAll() {
	s.Autosizer().Attach(page.AsElements(s.Page.Textareas())...)
}

// Edit is a simulated typing session on one textarea.
type Edit struct {
	ID   string
	Text string
}

// ParseEdit parses "id=text". Backslash escapes \n and \b in the text
// stand for a newline and a backspace.
func ParseEdit(s string) (Edit, error) {
	id, txt, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return Edit{}, fmt.Errorf("invalid edit %q: want id=text", s)
	}
	txt = strings.NewReplacer(`\n`, "\n", `\b`, "\b").Replace(txt)
	return Edit{ID: id, Text: txt}, nil
}

// Type applies an edit keystroke by keystroke.
func (s *Session) Type(e Edit) error {
	el, err := s.Page.ElementByID(e.ID)
	if err != nil {
		return err
	}
	return s.Page.Type(el, e.Text)
}

// SetValue replaces a textarea's value in one edit.
func (s *Session) SetValue(id, value string) error {
	el, err := s.Page.ElementByID(id)
	if err != nil {
		return err
	}
	return s.Page.SetValue(el, value)
}

// ParseViewport parses "WxH".
func ParseViewport(v string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid viewport %q: want WxH", v)
	}
	if width, err = strconv.Atoi(ws); err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid viewport width %q", ws)
	}
	if height, err = strconv.Atoi(hs); err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid viewport height %q", hs)
	}
	return width, height, nil
}

// Resize changes the viewport, firing window resize.
func (s *Session) Resize(width, height int) error {
	return s.Page.ResizeViewport(float64(width), float64(height))
}

// Paint renders the current viewport.
func (s *Session) Paint() *render.Renderer {
	w, h := s.Page.Engine().Viewport()
	r := render.NewRenderer(int(w), int(h))
	r.SetLogger(s.logger.Named("render"))
	if s.cfg.Render.FontsDir != "" {
		r.SetFonts(text.FontsIn(s.cfg.Render.FontsDir))
	}
	r.Render(s.Page.Engine())
	return r
}

func (s *Session) Image() image.Image {
	return s.Paint().Image()
}

func (s *Session) WritePNG(w io.Writer) error {
	return s.Paint().EncodePNG(w)
}
