package js

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// registerConsole installs a console object that writes to logger.
func registerConsole(vm *goja.Runtime, logger *zap.Logger) {
	console := vm.NewObject()
	logFunc := func(level zapcore.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			logger.Log(level, formatArgs(vm, call.Arguments))
			return goja.Undefined()
		}
	}
	console.Set("log", logFunc(zapcore.InfoLevel))
	console.Set("info", logFunc(zapcore.InfoLevel))
	console.Set("debug", logFunc(zapcore.DebugLevel))
	console.Set("warn", logFunc(zapcore.WarnLevel))
	console.Set("error", logFunc(zapcore.ErrorLevel))
	vm.Set("console", console)
}

// formatArgs joins console arguments, printing plain objects as JSON.
func formatArgs(vm *goja.Runtime, args []goja.Value) string {
	stringify, _ := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("stringify"))
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
		obj, ok := arg.(*goja.Object)
		if !ok || stringify == nil || obj.ClassName() != "Object" && obj.ClassName() != "Array" {
			continue
		}
		if s, err := stringify(goja.Undefined(), arg); err == nil && !goja.IsUndefined(s) {
			parts[i] = s.String()
		}
	}
	return strings.Join(parts, " ")
}
