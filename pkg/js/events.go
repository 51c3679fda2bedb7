package js

import (
	"errors"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"autosize/pkg/event"
	"autosize/pkg/page"
)

// listenerKey identifies a script listener the way the DOM does: by
// target, type and function object.
type listenerKey struct {
	target event.Target
	typ    string
	fn     *goja.Object
}

// registerEvents installs the Event and CustomEvent constructors.
func registerEvents(ctx *domContext) {
	vm := ctx.vm
	ctor := func(call goja.ConstructorCall) *goja.Object {
		obj := call.This
		obj.Set("type", call.Argument(0).String())
		bubbles := false
		if init, ok := call.Argument(1).(*goja.Object); ok {
			bubbles = init.Get("bubbles") != nil && init.Get("bubbles").ToBoolean()
		}
		obj.Set("bubbles", bubbles)
		return nil
	}
	vm.Set("Event", ctor)
	vm.Set("CustomEvent", ctor)
}

// eventMethod returns the addEventListener, removeEventListener or
// dispatchEvent function of target.
func (ctx *domContext) eventMethod(target event.Target, name string) goja.Value {
	vm := ctx.vm
	switch name {
	case "addEventListener":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			typ := call.Argument(0).String()
			fn, ok := call.Argument(1).(*goja.Object)
			if !ok {
				return goja.Undefined()
			}
			key := listenerKey{target: target, typ: typ, fn: fn}
			if _, exists := ctx.listeners[key]; exists {
				return goja.Undefined()
			}
			l := event.NewListener(ctx.jsHandler(fn))
			ctx.listeners[key] = l
			target.AddEventListener(typ, l)
			return goja.Undefined()
		})
	case "removeEventListener":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			fn, ok := call.Argument(1).(*goja.Object)
			if !ok {
				return goja.Undefined()
			}
			key := listenerKey{target: target, typ: call.Argument(0).String(), fn: fn}
			if l, exists := ctx.listeners[key]; exists {
				target.RemoveEventListener(key.typ, l)
				delete(ctx.listeners, key)
			}
			return goja.Undefined()
		})
	case "dispatchEvent":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			obj, ok := call.Argument(0).(*goja.Object)
			if !ok {
				panic(vm.NewTypeError("Failed to execute 'dispatchEvent': parameter 1 is not of type 'Event'"))
			}
			ev := event.New(obj.Get("type").String())
			if b := obj.Get("bubbles"); b != nil {
				ev.Bubbles = b.ToBoolean()
			}
			if err := target.DispatchEvent(ev); errors.Is(err, event.ErrDetached) {
				panic(vm.NewGoError(err))
			}
			return vm.ToValue(true)
		})
	}
	return goja.Undefined()
}

// jsHandler adapts a script function to an event handler. Exceptions are
// logged and do not reach the dispatcher, as in a browser.
func (ctx *domContext) jsHandler(fn *goja.Object) event.Handler {
	call, ok := goja.AssertFunction(fn)
	return func(ev *event.Event) {
		if !ok {
			return
		}
		evObj := ctx.vm.NewObject()
		evObj.Set("type", ev.Type)
		evObj.Set("bubbles", ev.Bubbles)
		evObj.Set("target", ctx.targetValue(ev.Target))
		evObj.Set("currentTarget", ctx.targetValue(ev.CurrentTarget))
		evObj.Set("stopPropagation", func(goja.FunctionCall) goja.Value {
			ev.StopPropagation()
			return goja.Undefined()
		})
		evObj.Set("preventDefault", func(goja.FunctionCall) goja.Value { return goja.Undefined() })
		if _, err := call(ctx.targetValue(ev.CurrentTarget), evObj); err != nil {
			ctx.logger.Error("uncaught exception in event listener",
				zap.String("type", ev.Type),
				zap.Error(err))
		}
	}
}

func (ctx *domContext) targetValue(t any) goja.Value {
	switch t := t.(type) {
	case *page.Element:
		return ctx.elementProxy(t)
	case *page.Window:
		if ctx.window != nil {
			return ctx.window
		}
	}
	return goja.Null()
}
