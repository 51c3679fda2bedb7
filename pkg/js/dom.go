package js

import (
	"strings"
	"unicode"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"autosize/pkg/css"
	"autosize/pkg/event"
	"autosize/pkg/html"
	"autosize/pkg/page"
)

// domContext holds the shared state of the bindings. Proxies are cached so
// the same element always yields the same JS object (=== holds), and the
// reverse map turns script arguments back into elements.
type domContext struct {
	vm      *goja.Runtime
	page    *page.Page
	proxies map[*page.Element]*goja.Object
	objects map[*goja.Object]*page.Element
	window  *goja.Object
	logger  *zap.Logger

	listeners map[listenerKey]*event.Listener
}

func newDOMContext(vm *goja.Runtime, p *page.Page, logger *zap.Logger) *domContext {
	return &domContext{
		vm:        vm,
		page:      p,
		proxies:   make(map[*page.Element]*goja.Object),
		objects:   make(map[*goja.Object]*page.Element),
		logger:    logger,
		listeners: make(map[listenerKey]*event.Listener),
	}
}

// registerDocument sets up the global `document` object.
func registerDocument(vm *goja.Runtime, p *page.Page, logger *zap.Logger) *domContext {
	ctx := newDOMContext(vm, p, logger)
	root := p.Document().Root

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		el, err := p.ElementByID(call.Argument(0).String())
		if err != nil {
			return goja.Null()
		}
		return ctx.elementProxy(el)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		tag := strings.ToLower(call.Argument(0).String())
		return ctx.elementArray(p.ElementsByTag(tag))
	})
	docObj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		els := ctx.query(root, call.Argument(0).String())
		if len(els) == 0 {
			return goja.Null()
		}
		return ctx.elementProxy(els[0])
	})
	docObj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		return ctx.elementArray(ctx.query(root, call.Argument(0).String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(p.Element(html.NewElement(call.Arguments[0].String())))
	})
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		bodies := p.ElementsByTag("body")
		if len(bodies) == 0 {
			return goja.Null()
		}
		return ctx.elementProxy(bodies[0])
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

// query returns the elements under scope matching a selector list, in
// document order. Invalid selectors throw a SyntaxError.
func (ctx *domContext) query(scope *html.Node, selectors string) []*page.Element {
	var sels []css.Selector
	for _, raw := range strings.Split(selectors, ",") {
		sel, err := css.ParseSelector(raw)
		if err != nil {
			panic(ctx.vm.NewGoError(err))
		}
		sels = append(sels, sel)
	}
	var out []*page.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for _, c := range n.Children {
			if c.Type != html.ElementNode {
				continue
			}
			for _, sel := range sels {
				if css.MatchesSelector(c, sel) {
					out = append(out, ctx.page.Element(c))
					break
				}
			}
			walk(c)
		}
	}
	walk(scope)
	return out
}

// elementArray creates a JS array of element proxies.
func (ctx *domContext) elementArray(els []*page.Element) goja.Value {
	vals := make([]interface{}, len(els))
	for i, el := range els {
		vals[i] = ctx.elementProxy(el)
	}
	return ctx.vm.NewArray(vals...)
}

// elementProxy creates (or retrieves from cache) the JS object of el.
func (ctx *domContext) elementProxy(el *page.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := ctx.proxies[el]; ok {
		return obj
	}
	obj := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, el: el})
	ctx.proxies[el] = obj
	ctx.objects[obj] = el
	return obj
}

// unwrap returns the element behind a proxy, nil for anything else.
func (ctx *domContext) unwrap(val goja.Value) *page.Element {
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	return ctx.objects[obj]
}

// elementAccessor implements goja.DynamicObject over a page element.
type elementAccessor struct {
	ctx *domContext
	el  *page.Element
}

var elementKeys = []string{
	"nodeName", "tagName", "id", "value", "textContent", "isConnected",
	"style", "scrollHeight", "scrollTop", "clientWidth", "clientHeight",
	"offsetWidth", "offsetHeight", "parentElement",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"addEventListener", "removeEventListener", "dispatchEvent",
	"querySelector", "querySelectorAll", "appendChild", "remove",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	el := e.el
	node := el.Node()

	switch key {
	case "nodeName", "tagName":
		return vm.ToValue(el.NodeName())
	case "id":
		return vm.ToValue(el.ID())
	case "value", "textContent":
		return vm.ToValue(el.Value())
	case "isConnected":
		return vm.ToValue(el.Connected())
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, decl: el.InlineStyle()})
	case "scrollHeight":
		return vm.ToValue(el.ScrollHeight())
	case "scrollTop":
		return vm.ToValue(el.ScrollTop())
	case "clientWidth":
		return vm.ToValue(el.ClientWidth())
	case "clientHeight":
		return vm.ToValue(el.ClientHeight())
	case "offsetWidth":
		return vm.ToValue(el.OffsetWidth())
	case "offsetHeight":
		return vm.ToValue(el.OffsetHeight())
	case "parentElement":
		if parent := e.ctx.page.Element(node.Parent); parent != nil {
			return e.ctx.elementProxy(parent)
		}
		return goja.Null()
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			val, ok := node.GetAttribute(call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			node.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
			e.ctx.page.Engine().Invalidate()
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			_, ok := node.GetAttribute(call.Argument(0).String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			node.RemoveAttribute(call.Argument(0).String())
			e.ctx.page.Engine().Invalidate()
			return goja.Undefined()
		})
	case "addEventListener", "removeEventListener", "dispatchEvent":
		return e.ctx.eventMethod(el, key)
	case "querySelector":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			els := e.ctx.query(node, call.Argument(0).String())
			if len(els) == 0 {
				return goja.Null()
			}
			return e.ctx.elementProxy(els[0])
		})
	case "querySelectorAll":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementArray(e.ctx.query(node, call.Argument(0).String()))
		})
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.unwrap(call.Argument(0))
			if child == nil {
				panic(vm.NewTypeError("Failed to execute 'appendChild': parameter 1 is not an element"))
			}
			node.InsertBefore(child.Node(), nil)
			e.ctx.page.Engine().Invalidate()
			return call.Argument(0)
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if node.Parent != nil {
				node.Parent.RemoveChild(node)
				e.ctx.page.Engine().Invalidate()
			}
			return goja.Undefined()
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "value", "textContent":
		e.el.SetValue(val.String())
		return true
	case "scrollTop":
		e.el.SetScrollTop(val.ToFloat())
		return true
	case "id":
		e.el.Node().SetAttribute("id", val.String())
		e.ctx.page.Engine().Invalidate()
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return []string{"nodeName", "id"}
}

// declaration is the part of a CSS declaration block the style proxies
// need.
type declaration interface {
	GetPropertyValue(name string) string
	SetProperty(name, value string)
}

// styleAccessor maps JS camelCase property access (el.style.overflowY) to
// kebab-case CSS properties of a declaration block.
type styleAccessor struct {
	vm       *goja.Runtime
	decl     declaration
	readOnly bool
}

func (s *styleAccessor) Get(key string) goja.Value {
	switch key {
	case "getPropertyValue":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(s.decl.GetPropertyValue(call.Argument(0).String()))
		})
	case "setProperty":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			s.Set(call.Argument(0).String(), call.Argument(1))
			return goja.Undefined()
		})
	case "cssText":
		if inline, ok := s.decl.(*page.InlineStyle); ok {
			return s.vm.ToValue(inline.CSSText())
		}
		return s.vm.ToValue("")
	}
	return s.vm.ToValue(s.decl.GetPropertyValue(camelToKebab(key)))
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	if s.readOnly {
		panic(s.vm.NewTypeError("Failed to set '" + key + "' on 'CSSStyleDeclaration': read-only"))
	}
	value := ""
	if !goja.IsNull(val) && !goja.IsUndefined(val) {
		value = val.String()
	}
	if key == "cssText" {
		if inline, ok := s.decl.(*page.InlineStyle); ok {
			inline.SetCSSText(value)
		}
		return true
	}
	s.decl.SetProperty(camelToKebab(key), value)
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	return s.Set(key, goja.Undefined())
}

func (s *styleAccessor) Keys() []string {
	return nil
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
