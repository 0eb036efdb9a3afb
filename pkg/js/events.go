package js

import (
	"strconv"

	"github.com/dop251/goja"

	"mouseparallax/pkg/event"
)

// jsListener ties a script callback to the document registration behind it,
// so removeEventListener can find it by function identity.
type jsListener struct {
	typ    string
	fn     goja.Value
	handle event.Handle
}

// registerEventTarget adds addEventListener, removeEventListener and
// dispatchEvent to the document object. Listeners receive a plain event
// object with type, clientX/clientY, touches and changedTouches.
func (ctx *domContext) registerEventTarget(obj *goja.Object) {
	vm := ctx.vm
	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'addEventListener': 2 arguments required"))
		}
		typ := call.Arguments[0].String()
		fnVal := call.Arguments[1]
		fn, ok := goja.AssertFunction(fnVal)
		if !ok {
			return goja.Undefined()
		}
		for _, l := range ctx.listeners {
			if l.typ == typ && l.fn.SameAs(fnVal) {
				return goja.Undefined()
			}
		}
		h := ctx.doc.AddEventListener(typ, func(ev event.Event) {
			if _, err := fn(obj, ctx.eventObject(ev)); err != nil {
				ctx.reportError(err)
			}
		})
		ctx.listeners = append(ctx.listeners, jsListener{typ: typ, fn: fnVal, handle: h})
		return goja.Undefined()
	})
	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		typ := call.Arguments[0].String()
		for i, l := range ctx.listeners {
			if l.typ == typ && l.fn.SameAs(call.Arguments[1]) {
				ctx.doc.RemoveEventListener(l.handle)
				ctx.listeners = append(ctx.listeners[:i], ctx.listeners[i+1:]...)
				break
			}
		}
		return goja.Undefined()
	})
	obj.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'dispatchEvent': 1 argument required"))
		}
		ctx.doc.DispatchEvent(ctx.parseEvent(call.Arguments[0].ToObject(vm)))
		return vm.ToValue(true)
	})
}

// eventObject converts a dispatched event to its script form.
func (ctx *domContext) eventObject(ev event.Event) goja.Value {
	vm := ctx.vm
	obj := vm.NewObject()
	obj.Set("type", ev.Type)
	obj.Set("clientX", ev.ClientX)
	obj.Set("clientY", ev.ClientY)
	touches := make([]any, len(ev.Touches))
	for i, t := range ev.Touches {
		to := vm.NewObject()
		to.Set("clientX", t.ClientX)
		to.Set("clientY", t.ClientY)
		to.Set("pageX", t.PageX)
		to.Set("pageY", t.PageY)
		touches[i] = to
	}
	obj.Set("touches", vm.NewArray(touches...))
	obj.Set("changedTouches", vm.NewArray(touches...))
	return obj
}

// parseEvent reads a script-built event. Touch points come from
// changedTouches, falling back to touches.
func (ctx *domContext) parseEvent(obj *goja.Object) event.Event {
	ev := event.Event{
		Type:    obj.Get("type").String(),
		ClientX: numberProp(obj, "clientX"),
		ClientY: numberProp(obj, "clientY"),
	}
	list := obj.Get("changedTouches")
	if list == nil || goja.IsUndefined(list) || goja.IsNull(list) {
		list = obj.Get("touches")
	}
	if list == nil || goja.IsUndefined(list) || goja.IsNull(list) {
		return ev
	}
	arr := list.ToObject(ctx.vm)
	n := arr.Get("length").ToInteger()
	for i := int64(0); i < n; i++ {
		t := arr.Get(strconv.FormatInt(i, 10)).ToObject(ctx.vm)
		ev.Touches = append(ev.Touches, event.Touch{
			ClientX: numberProp(t, "clientX"),
			ClientY: numberProp(t, "clientY"),
			PageX:   numberProp(t, "pageX"),
			PageY:   numberProp(t, "pageY"),
		})
	}
	return ev
}

// reportError logs an exception thrown by a listener. Like a browser, the
// exception does not propagate to the code that dispatched the event.
func (ctx *domContext) reportError(err error) {
	if ctx.logger != nil {
		ctx.logger.Error("uncaught exception in event listener", "err", err)
	}
}

func numberProp(obj *goja.Object, name string) float64 {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0
	}
	return v.ToFloat()
}
