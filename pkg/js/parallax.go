package js

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dop251/goja"

	"mouseparallax/pkg/html"
	"mouseparallax/pkg/parallax"
)

// registerParallax installs the MouseParallax constructor:
//
//	new MouseParallax(elements, globals, container)
//
// elements is an element or an array-like of elements, globals a plain
// object ({intensityX: 0.5, limitY: 10, speed: 2}) and container an
// element. Every method that changes state returns the instance.
func (e *Engine) registerParallax(ctx *domContext) {
	vm := e.vm
	vm.Set("MouseParallax", func(call goja.ConstructorCall) *goja.Object {
		opts := []parallax.Option{
			parallax.WithLogger(e.logger.WithPrefix("parallax")),
			parallax.WithDocument(ctx.doc),
		}
		opts = append(opts, e.parallaxOpts...)
		if g := exportMap(call.Argument(1)); g != nil {
			opts = append(opts, parallax.WithGlobals(parallax.DecodeGlobals(g)))
		}
		if c := ctx.unwrapNode(call.Argument(2)); c != nil {
			opts = append(opts, parallax.WithContainer(c))
		}

		pe := parallax.New(ctx.unwrapNodes(call.Argument(0)), opts...)
		e.engines = append(e.engines, pe)

		b := &parallaxBinding{ctx: ctx, engine: pe, obj: call.This, itemObjs: make(map[*html.Node]goja.Value)}
		b.bind()
		return call.This
	})
}

// parallaxBinding is the script face of one parallax.Engine.
type parallaxBinding struct {
	ctx    *domContext
	engine *parallax.Engine
	obj    *goja.Object

	globals  goja.Value
	itemObjs map[*html.Node]goja.Value
}

func (b *parallaxBinding) bind() {
	vm := b.ctx.vm
	pe := b.engine

	chain := func(f func()) func(goja.FunctionCall) goja.Value {
		return func(goja.FunctionCall) goja.Value {
			f()
			return b.obj
		}
	}
	b.obj.Set("build", chain(func() { pe.Build() }))
	b.obj.Set("reload", chain(func() { pe.Reload() }))
	b.obj.Set("destroy", chain(func() { pe.Destroy() }))
	b.obj.Set("start", chain(func() { pe.Start() }))
	b.obj.Set("stop", chain(func() { pe.Stop() }))
	b.obj.Set("createListeners", chain(func() { pe.CreateListeners() }))
	b.obj.Set("destroyListeners", chain(func() { pe.DestroyListeners() }))
	b.obj.Set("reloadListeners", chain(func() { pe.ReloadListeners() }))

	b.obj.Set("execute", func(call goja.FunctionCall) goja.Value {
		pe.Execute(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return b.obj
	})
	b.obj.Set("move", func(call goja.FunctionCall) goja.Value {
		pe.Move(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return b.obj
	})

	b.obj.Set("addItem", func(call goja.FunctionCall) goja.Value {
		rules, err := rulesArg(call.Argument(1))
		if err != nil {
			pe.Report(fmt.Errorf("addItem: %w", err))
			return b.obj
		}
		pe.AddItem(b.ctx.unwrapNode(call.Argument(0)), rules)
		return b.obj
	})
	b.obj.Set("addItems", func(call goja.FunctionCall) goja.Value {
		rules, err := b.rulesListArg(call.Argument(1))
		if err != nil {
			pe.Report(fmt.Errorf("addItems: %w", err))
			return b.obj
		}
		pe.AddItems(b.ctx.unwrapNodes(call.Argument(0)), rules...)
		return b.obj
	})
	b.obj.Set("setItems", func(call goja.FunctionCall) goja.Value {
		rules, err := b.rulesListArg(call.Argument(1))
		if err != nil {
			pe.Report(fmt.Errorf("setItems: %w", err))
			return b.obj
		}
		pe.SetItems(b.ctx.unwrapNodes(call.Argument(0)), rules...)
		return b.obj
	})
	b.obj.Set("editItem", func(call goja.FunctionCall) goja.Value {
		pe.EditItemFields(int(call.Argument(0).ToInteger()), exportMap(call.Argument(1)))
		return b.obj
	})

	b.obj.Set("setMoveStrategy", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			pe.SetStrategy(nil)
			return b.obj
		}
		pe.SetStrategy(parallax.MoveFunc(func(_ *parallax.Engine, x, y float64) {
			if _, err := fn(b.obj, vm.ToValue(x), vm.ToValue(y)); err != nil {
				b.ctx.reportError(err)
			}
		}))
		return b.obj
	})

	b.accessor("items", func() goja.Value { return b.items() }, nil)
	b.accessor("globals", func() goja.Value { return b.globalsObject() }, func(v goja.Value) {
		pe.SetGlobals(parallax.DecodeGlobals(exportMap(v)))
	})
	b.accessor("throttle", func() goja.Value { return vm.ToValue(pe.Throttle().Milliseconds()) }, func(v goja.Value) {
		pe.SetThrottle(time.Duration(v.ToFloat() * float64(time.Millisecond)))
	})
	b.accessor("status", func() goja.Value { return vm.ToValue(int(pe.Status())) }, nil)
	b.accessor("container", func() goja.Value {
		if c := pe.Container(); c != nil {
			return b.ctx.elementProxy(c)
		}
		return goja.Null()
	}, func(v goja.Value) {
		pe.SetContainer(b.ctx.unwrapNode(v))
	})
	b.accessor("lastError", func() goja.Value {
		if err := pe.Err(); err != nil {
			return vm.ToValue(err.Error())
		}
		return goja.Null()
	}, nil)
	b.accessor("errors", func() goja.Value {
		errs := pe.Errors()
		msgs := make([]any, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return vm.NewArray(msgs...)
	}, nil)
}

// accessor defines a getter/setter pair on the instance. A nil set makes
// the property read-only.
func (b *parallaxBinding) accessor(name string, get func() goja.Value, set func(goja.Value)) {
	vm := b.ctx.vm
	getter := vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	var setter goja.Value
	if set != nil {
		setter = vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0))
			return goja.Undefined()
		})
	}
	b.obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// items returns a fresh array on every read, but each item keeps one
// object for as long as the engine manages its element.
func (b *parallaxBinding) items() goja.Value {
	items := b.engine.Items()
	out := make([]any, len(items))
	for i, it := range items {
		obj, ok := b.itemObjs[it.Element]
		if !ok {
			obj = b.ctx.vm.NewDynamicObject(&itemAccessor{b: b, el: it.Element})
			b.itemObjs[it.Element] = obj
		}
		out[i] = obj
	}
	return b.ctx.vm.NewArray(out...)
}

func (b *parallaxBinding) globalsObject() goja.Value {
	if b.globals == nil {
		b.globals = b.ctx.vm.NewDynamicObject(&globalsAccessor{b: b})
	}
	return b.globals
}

// rulesArg decodes one rules object. Rules never name an element, so a
// payload that does is rejected with ErrInvalidEditTarget.
func rulesArg(v goja.Value) (parallax.Rules, error) {
	fields := exportMap(v)
	if fields == nil {
		return parallax.Rules{}, nil
	}
	return parallax.DecodeRules(fields)
}

// rulesListArg decodes an optional array of rules objects. Undefined
// yields no list at all, so the engine skips the length check.
func (b *parallaxBinding) rulesListArg(v goja.Value) ([][]parallax.Rules, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	arr := v.ToObject(b.ctx.vm)
	n := arr.Get("length").ToInteger()
	list := make([]parallax.Rules, 0, n)
	for i := int64(0); i < n; i++ {
		r, err := rulesArg(arr.Get(strconv.FormatInt(i, 10)))
		if err != nil {
			return nil, fmt.Errorf("rules %d: %w", i, err)
		}
		list = append(list, r)
	}
	return [][]parallax.Rules{list}, nil
}

// globalsAccessor is the live globals object. Reads see the engine's
// current globals; writes merge into them, and a speed change shows in
// the transitions after the next reload.
type globalsAccessor struct {
	b *parallaxBinding
}

var globalsKeys = []string{"intensityX", "intensityY", "limitX", "limitY", "speed"}

func globalsField(g parallax.Globals, key string) *float64 {
	switch key {
	case "intensityX":
		return g.IntensityX
	case "intensityY":
		return g.IntensityY
	case "limitX":
		return g.LimitX
	case "limitY":
		return g.LimitY
	case "speed":
		return g.Speed
	}
	return nil
}

func (a *globalsAccessor) Get(key string) goja.Value {
	if v := globalsField(a.b.engine.Globals(), key); v != nil {
		return a.b.ctx.vm.ToValue(*v)
	}
	return goja.Undefined()
}

func (a *globalsAccessor) Set(key string, val goja.Value) bool {
	a.b.engine.MergeGlobals(parallax.DecodeGlobals(map[string]any{key: val.Export()}))
	return true
}

func (a *globalsAccessor) Has(key string) bool {
	return globalsField(a.b.engine.Globals(), key) != nil
}

func (a *globalsAccessor) Delete(string) bool { return false }

func (a *globalsAccessor) Keys() []string {
	g := a.b.engine.Globals()
	var keys []string
	for _, k := range globalsKeys {
		if globalsField(g, k) != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// itemAccessor is the live object for one managed element. Writes go
// through EditItemFields, so they are validated and applied to the
// element's CSS like editItem.
type itemAccessor struct {
	b  *parallaxBinding
	el *html.Node
}

var itemKeys = []string{"element", "intensityX", "intensityY", "limitX", "limitY", "speed", "position"}

func (a *itemAccessor) Get(key string) goja.Value {
	vm := a.b.ctx.vm
	if key == "element" {
		return a.b.ctx.elementProxy(a.el)
	}
	it, ok := a.b.engine.Item(a.b.engine.Index(a.el))
	if !ok {
		return goja.Undefined()
	}
	switch key {
	case "intensityX":
		return vm.ToValue(it.IntensityX)
	case "intensityY":
		return vm.ToValue(it.IntensityY)
	case "limitX":
		return vm.ToValue(it.LimitX)
	case "limitY":
		return vm.ToValue(it.LimitY)
	case "speed":
		return vm.ToValue(it.Speed)
	case "position":
		if it.Position != nil {
			return vm.ToValue(*it.Position)
		}
	}
	return goja.Undefined()
}

func (a *itemAccessor) Set(key string, val goja.Value) bool {
	a.b.engine.EditItemFields(a.b.engine.Index(a.el), map[string]any{key: val.Export()})
	return true
}

func (a *itemAccessor) Has(key string) bool {
	if key == "position" {
		it, ok := a.b.engine.Item(a.b.engine.Index(a.el))
		return ok && it.Position != nil
	}
	for _, k := range itemKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (a *itemAccessor) Delete(string) bool { return false }

func (a *itemAccessor) Keys() []string {
	if a.Has("position") {
		return itemKeys
	}
	return itemKeys[:len(itemKeys)-1]
}

// exportMap returns the fields of a plain object argument, or nil.
func exportMap(v goja.Value) map[string]any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	m, _ := v.Export().(map[string]any)
	return m
}
