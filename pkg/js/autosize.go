package js

import (
	"strconv"

	"github.com/dop251/goja"

	"autosize/pkg/autosize"
)

// registerAutosize installs autosize(target), autosize.update(target) and
// autosize.destroy(target). A target is an element, an array or any
// array-like; non-elements inside it are ignored and the target is
// returned as given.
func registerAutosize(ctx *domContext, a *autosize.Autosizer) {
	vm := ctx.vm
	apply := func(op func(...autosize.Element) []autosize.Element) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			target := call.Argument(0)
			op(ctx.targets(target)...)
			return target
		}
	}

	fn := vm.ToValue(apply(a.Attach)).(*goja.Object)
	fn.Set("update", apply(a.Update))
	fn.Set("destroy", apply(a.Destroy))
	vm.Set("autosize", fn)
}

// targets collects the elements a script passed as a target.
func (ctx *domContext) targets(v goja.Value) []autosize.Element {
	if el := ctx.unwrap(v); el != nil {
		return []autosize.Element{el}
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	length := obj.Get("length")
	if length == nil || goja.IsUndefined(length) {
		return nil
	}
	var els []autosize.Element
	n := length.ToInteger()
	for i := int64(0); i < n; i++ {
		if el := ctx.unwrap(obj.Get(strconv.FormatInt(i, 10))); el != nil {
			els = append(els, el)
		}
	}
	return els
}
