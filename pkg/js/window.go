package js

import (
	"github.com/dop251/goja"
)

// registerWindow installs `window` and mirrors its functions as globals.
// getComputedStyle is left out when the page has no computed styles, which
// is what scripts feature-detect.
func registerWindow(ctx *domContext) {
	vm := ctx.vm
	w := ctx.page.Window()

	win := vm.NewObject()
	ctx.window = win
	for _, name := range []string{"addEventListener", "removeEventListener", "dispatchEvent"} {
		win.Set(name, ctx.eventMethod(w, name))
	}

	getter := func(f func() float64) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value { return vm.ToValue(f()) })
	}
	win.DefineAccessorProperty("innerWidth", getter(w.InnerWidth), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.DefineAccessorProperty("innerHeight", getter(w.InnerHeight), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.DefineAccessorProperty("scrollY", getter(w.ScrollY), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		w.ScrollTo(call.Argument(1).ToFloat())
		return goja.Undefined()
	})

	if w.HasComputedStyle() {
		win.Set("getComputedStyle", func(call goja.FunctionCall) goja.Value {
			el := ctx.unwrap(call.Argument(0))
			if el == nil {
				panic(vm.NewTypeError("Failed to execute 'getComputedStyle': parameter 1 is not of type 'Element'"))
			}
			return vm.NewDynamicObject(&styleAccessor{vm: vm, decl: el.ComputedStyle(), readOnly: true})
		})
		vm.Set("getComputedStyle", win.Get("getComputedStyle"))
	}

	win.Set("document", vm.Get("document"))
	win.Set("window", win)
	vm.Set("window", win)
}
