//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/scenekit/internal/engine"
	"github.com/inamate/scenekit/internal/events"
)

var eng *engine.Engine

// callbacks keeps JS handler functions alive while their binding exists.
var callbacks = map[string]js.Value{}

func main() {
	eng = engine.NewEngine(nil, 0)

	// Create the engine API object
	sceneEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	sceneEngine.Set("apply", js.FuncOf(apply))
	sceneEngine.Set("setSelection", js.FuncOf(setSelection))
	sceneEngine.Set("bind", js.FuncOf(bind))
	sceneEngine.Set("unbind", js.FuncOf(unbind))
	sceneEngine.Set("addTimer", js.FuncOf(addTimer))
	sceneEngine.Set("dispatch", js.FuncOf(dispatch))

	// --- Queries (frontend ← backend) ---
	sceneEngine.Set("render", js.FuncOf(render))
	sceneEngine.Set("hitTest", js.FuncOf(hitTest))
	sceneEngine.Set("getShape", js.FuncOf(getShape))
	sceneEngine.Set("getSelection", js.FuncOf(getSelection))
	sceneEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))

	// Register on global scope
	js.Global().Set("sceneEngine", sceneEngine)

	// Signal that WASM is ready
	js.Global().Set("sceneWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(msg string) js.Value {
	return js.ValueOf(map[string]any{"error": msg})
}

// --- Command Handlers ---

func apply(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(`{"error":"missing operation JSON"}`)
	}
	return js.ValueOf(eng.ApplyJSON(args[0].String()))
}

func setSelection(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]int, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).Int()
	}
	eng.SetSelection(ids)
	return nil
}

// bind(binding, handler, target?) where target is a shape id or a tag.
// The handler receives the event JSON and the shape id.
func bind(this js.Value, args []js.Value) any {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return errorValue("usage: bind(binding, handler, target?)")
	}
	fn := args[1]

	id, err := eng.Router().Bind(args[0].String(), jsHandler(fn), targetArg(args, 2))
	if err != nil {
		return errorValue(err.Error())
	}
	callbacks[id] = fn
	return js.ValueOf(map[string]any{"id": id})
}

func unbind(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	id := args[0].String()
	delete(callbacks, id)
	return js.ValueOf(eng.Router().UnbindID(id))
}

func addTimer(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return errorValue("usage: addTimer(handler)")
	}
	fn := args[0]

	var id string
	id, code := eng.Router().AddTimer(func(ev events.Event, shapeID int) {
		delete(callbacks, id)
		jsHandler(fn)(ev, shapeID)
	})
	callbacks[id] = fn
	return js.ValueOf(map[string]any{"id": id, "timer": code})
}

func dispatch(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	var ev events.Event
	if err := json.Unmarshal([]byte(args[0].String()), &ev); err != nil {
		return errorValue("invalid event: " + err.Error())
	}
	return js.ValueOf(eng.Dispatch(ev))
}

func jsHandler(fn js.Value) events.Handler {
	return func(ev events.Event, shapeID int) {
		data, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fn.Invoke(string(data), shapeID)
	}
}

func targetArg(args []js.Value, i int) events.Target {
	if len(args) <= i {
		return events.Target{}
	}
	switch args[i].Type() {
	case js.TypeNumber:
		return events.ShapeTarget(args[i].Int())
	case js.TypeString:
		return events.TagTarget(args[i].String())
	}
	return events.Target{}
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf(0)
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getShape(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.GetShape(args[0].Int()))
}

func getSelection(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelection())
}

func getSelectionBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelectionBounds())
}
