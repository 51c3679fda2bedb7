package event

import (
	"slices"

	"go.uber.org/zap"
)

// Registry holds the listeners of every target of one host, keyed by the
// target's identity.
type Registry struct {
	listeners map[any]map[string][]*Listener
	logger    *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		listeners: make(map[any]map[string][]*Listener),
		logger:    logger,
	}
}

// Add registers l for typ on target. Adding the same listener twice for
// the same type is ignored.
func (r *Registry) Add(target any, typ string, l *Listener) {
	if l == nil {
		return
	}
	byType := r.listeners[target]
	if byType == nil {
		byType = make(map[string][]*Listener)
		r.listeners[target] = byType
	}
	if slices.Contains(byType[typ], l) {
		return
	}
	byType[typ] = append(byType[typ], l)
}

// Remove unregisters l for typ on target and reports whether it was
// registered.
func (r *Registry) Remove(target any, typ string, l *Listener) bool {
	byType := r.listeners[target]
	i := slices.Index(byType[typ], l)
	if i < 0 {
		return false
	}
	byType[typ] = slices.Delete(slices.Clone(byType[typ]), i, i+1)
	if len(byType[typ]) == 0 {
		delete(byType, typ)
	}
	if len(byType) == 0 {
		delete(r.listeners, target)
	}
	return true
}

// Count returns how many listeners are registered for typ on target.
func (r *Registry) Count(target any, typ string) int {
	return len(r.listeners[target][typ])
}

// Total returns how many listeners target has across all types.
func (r *Registry) Total(target any) int {
	n := 0
	for _, ls := range r.listeners[target] {
		n += len(ls)
	}
	return n
}

// Dispatch delivers e along path, which starts at the target and lists its
// ancestors outward. Non-bubbling events only reach path[0]. A listener
// removed while the event is in flight is not called. A panicking listener
// is logged and does not stop the others; the first panic is returned as a
// *PanicError once dispatch completes.
func (r *Registry) Dispatch(e *Event, path []any) error {
	if e == nil {
		return ErrNilEvent
	}
	if len(path) == 0 {
		return nil
	}
	e.Target = path[0]
	var firstErr error
	for i, target := range path {
		if i > 0 && !e.Bubbles {
			break
		}
		e.CurrentTarget = target
		for _, l := range r.listeners[target][e.Type] {
			if !slices.Contains(r.listeners[target][e.Type], l) {
				continue
			}
			if err := r.invoke(l, e); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if e.stopped {
			break
		}
	}
	e.CurrentTarget = nil
	return firstErr
}

func (r *Registry) invoke(l *Listener, e *Event) (err error) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("event listener panicked",
				zap.String("type", e.Type),
				zap.Any("value", v))
			err = &PanicError{Type: e.Type, Value: v}
		}
	}()
	l.Handle(e)
	return nil
}
