package events

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/inamate/scenekit/internal/typeid"
)

// Scene is the part of the shape registry the router needs to decide
// which shapes an event hits.
type Scene interface {
	FindAll() []int
	FindWithTag(tag string) []int
	ContainsPoint(id int, x, y float64) bool
}

// Handler receives the event and the id of the shape it hit, or 0 for
// untargeted bindings.
type Handler func(ev Event, shapeID int)

// Target restricts a pointer binding to a shape id, to shapes carrying a
// tag, or both. The zero Target binds to the whole canvas.
type Target struct {
	ID  int
	Tag string
}

func ShapeTarget(id int) Target   { return Target{ID: id} }
func TagTarget(tag string) Target { return Target{Tag: tag} }

func (t Target) IsZero() bool { return t.ID == 0 && t.Tag == "" }

type binding struct {
	id      string
	kind    Kind
	code    int
	target  Target
	handler Handler
}

// Router holds event bindings and dispatches events to them. Like Scene it
// is single-threaded.
type Router struct {
	scene     Scene
	keys      KeyMap
	bindings  map[Kind][]*binding
	lastTimer int
	logger    *slog.Logger
}

// NewRouter creates a router over s. A nil keys uses DefaultKeyMap.
func NewRouter(s Scene, keys KeyMap, logger *slog.Logger) *Router {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		scene:    s,
		keys:     keys,
		bindings: make(map[Kind][]*binding),
		logger:   logger,
	}
}

func (r *Router) resolve(bindingStr string) (Kind, int, error) {
	kind, name, err := ParseBinding(bindingStr)
	if err != nil {
		return 0, 0, err
	}
	code, ok := r.keys.Lookup(name)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidBinding, name, bindingStr)
	}
	if kind.IsPointer() {
		code = 0
	}
	return kind, code, nil
}

// Bind registers h for the binding string and returns the binding id.
// Target only matters for pointer bindings. Timer bindings are made with
// AddTimer.
func (r *Router) Bind(bindingStr string, h Handler, target Target) (string, error) {
	kind, code, err := r.resolve(bindingStr)
	if err != nil {
		return "", err
	}
	if kind == Timer {
		return "", fmt.Errorf("%w: timers are registered with AddTimer", ErrInvalidBinding)
	}
	return r.add(kind, code, target, h), nil
}

// AddTimer registers a one-shot handler and returns its binding id and
// timer id. The host schedules the timer and dispatches
// Event{Kind: Timer, Key: timerID} when it fires.
func (r *Router) AddTimer(h Handler) (string, int) {
	r.lastTimer++
	return r.add(Timer, r.lastTimer, Target{}, h), r.lastTimer
}

func (r *Router) add(kind Kind, code int, target Target, h Handler) string {
	b := &binding{
		id:      typeid.NewBindingID(),
		kind:    kind,
		code:    code,
		target:  target,
		handler: h,
	}
	r.bindings[kind] = append(r.bindings[kind], b)
	r.logger.Debug("bound event", "binding", b.id, "kind", kind, "target", target)
	return b.id
}

// Unbind removes every binding of the same kind, key and target.
func (r *Router) Unbind(bindingStr string, target Target) (bool, error) {
	kind, code, err := r.resolve(bindingStr)
	if err != nil {
		return false, err
	}
	before := len(r.bindings[kind])
	r.bindings[kind] = slices.DeleteFunc(r.bindings[kind], func(b *binding) bool {
		return b.target == target && (kind == Timer || b.code == code)
	})
	return len(r.bindings[kind]) < before, nil
}

// UnbindID removes the binding with the given id.
func (r *Router) UnbindID(id string) bool {
	for kind, list := range r.bindings {
		if i := slices.IndexFunc(list, func(b *binding) bool { return b.id == id }); i >= 0 {
			r.bindings[kind] = slices.Delete(list, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of live bindings.
func (r *Router) Len() int {
	n := 0
	for _, list := range r.bindings {
		n += len(list)
	}
	return n
}

// Dispatch delivers ev to every matching binding and reports whether any
// handler ran. Pointer bindings with a target fire once per targeted shape
// containing the position; untargeted ones always fire. Key bindings fire
// when the key code matches and timer bindings when the timer id does.
//
// Bindings and shape ids are snapshotted first, so handlers may bind,
// unbind and mutate the scene freely.
func (r *Router) Dispatch(ev Event) bool {
	called := false
	for _, b := range slices.Clone(r.bindings[ev.Kind]) {
		switch {
		case ev.Kind.IsPointer():
			if b.target.IsZero() {
				b.handler(ev, 0)
				called = true
				continue
			}
			if ev.Position == nil {
				continue
			}
			// containment is checked per call so earlier handlers may
			// move or remove later candidates
			for _, id := range r.candidates(b.target) {
				if r.scene.ContainsPoint(id, ev.Position.X, ev.Position.Y) {
					b.handler(ev, id)
					called = true
				}
			}
		case ev.Kind == Timer:
			if b.code == ev.Key {
				r.UnbindID(b.id)
				b.handler(ev, 0)
				called = true
			}
		default:
			if b.code == ev.Key {
				b.handler(ev, 0)
				called = true
			}
		}
	}
	return called
}

// Hits returns the shapes a pointer event at ev.Position reaches for
// target, in paint order. Hidden shapes are hit too.
func (r *Router) Hits(ev Event, target Target) []int {
	if ev.Position == nil {
		return nil
	}
	var ids []int
	for _, id := range r.candidates(target) {
		if r.scene.ContainsPoint(id, ev.Position.X, ev.Position.Y) {
			ids = append(ids, id)
		}
	}
	return ids
}

// candidates snapshots the ids target refers to, in paint order.
func (r *Router) candidates(target Target) []int {
	var tagged []int
	if target.Tag != "" {
		tagged = r.scene.FindWithTag(target.Tag)
	}
	var ids []int
	for _, id := range r.scene.FindAll() {
		if id == target.ID || slices.Contains(tagged, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
