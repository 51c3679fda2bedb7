// Package js runs page scripts with goja against a page.Page, exposing
// the document, the window and the autosize() global.
package js

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"autosize/pkg/autosize"
	"autosize/pkg/page"
)

// Engine executes JavaScript against a page.
type Engine struct {
	vm        *goja.Runtime
	page      *page.Page
	logger    *zap.Logger
	autosizer *autosize.Autosizer
	dom       *domContext
}

// New creates an engine with a fresh runtime bound to p. Options are passed
// to the Autosizer behind the autosize() global.
func New(p *page.Page, logger *zap.Logger, opts ...autosize.Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	vm := goja.New()
	e := &Engine{
		vm:     vm,
		page:   p,
		logger: logger,
	}
	opts = append([]autosize.Option{autosize.WithLogger(logger.Named("autosize"))}, opts...)
	e.autosizer = autosize.New(p.Window(), opts...)

	registerConsole(vm, logger.Named("console"))
	e.dom = registerDocument(vm, p, logger)
	registerWindow(e.dom)
	registerEvents(e.dom)
	registerAutosize(e.dom, e.autosizer)
	return e
}

// Autosizer is the Autosizer the scripts drive.
func (e *Engine) Autosizer() *autosize.Autosizer {
	return e.autosizer
}

// Execute runs the document's scripts in order and stops at the first
// failing one.
func (e *Engine) Execute() error {
	for i, script := range e.page.Document().Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Run evaluates src and returns its completion value.
func (e *Engine) Run(src string) (goja.Value, error) {
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	return v, nil
}
