package js

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"mouseparallax/pkg/css"
	"mouseparallax/pkg/html"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *html.Node (needed for === identity checks).
type domContext struct {
	vm        *goja.Runtime
	doc       *html.Document
	cache     map[*html.Node]goja.Value
	listeners []jsListener
	logger    *log.Logger
}

func newDOMContext(vm *goja.Runtime, doc *html.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, doc *html.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := doc.GetElementByID(call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.elementArray(doc.GetElementsByTagName(tag))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(doc.GetElementsByClassName(call.Arguments[0].String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(html.NewElement(call.Arguments[0].String()))
	})
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if body := doc.Body(); body != nil {
			return ctx.elementProxy(body)
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	ctx.registerEventTarget(docObj)

	vm.Set("document", docObj)
	return ctx
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	values := make([]any, len(nodes))
	for i, n := range nodes {
		values[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(values...)
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an html.Node.
func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *html.Node from a goja value that wraps an elementAccessor.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// unwrapNodes accepts a single element or an array-like of elements.
// Entries that are not elements come back as nil so callers can report
// them.
func (ctx *domContext) unwrapNodes(val goja.Value) []*html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	if n := ctx.unwrapNode(val); n != nil {
		return []*html.Node{n}
	}
	obj := val.ToObject(ctx.vm)
	length := obj.Get("length")
	if length == nil || goja.IsUndefined(length) {
		return nil
	}
	nodes := make([]*html.Node, 0, length.ToInteger())
	for i := int64(0); i < length.ToInteger(); i++ {
		nodes = append(nodes, ctx.unwrapNode(obj.Get(strconv.FormatInt(i, 10))))
	}
	return nodes
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

var elementKeys = []string{
	"tagName", "id", "className",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "parentElement", "style", "dataset",
	"appendChild", "removeChild", "contains",
	"offsetWidth", "offsetHeight", "getBoundingClientRect",
	"getElementsByClassName", "outerHTML",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm

	switch key {
	case "tagName":
		return vm.ToValue(strings.ToUpper(e.node.TagName))
	case "id":
		return vm.ToValue(e.node.ID())
	case "className":
		cls, _ := e.node.GetAttribute("class")
		return vm.ToValue(cls)
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := e.node.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			e.node.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := e.node.GetAttribute(call.Arguments[0].String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				e.node.RemoveAttribute(call.Arguments[0].String())
			}
			return goja.Undefined()
		})
	case "children":
		var elChildren []*html.Node
		for _, child := range e.node.Children {
			if child.Type == html.ElementNode {
				elChildren = append(elChildren, child)
			}
		}
		return e.ctx.elementArray(elChildren)
	case "parentElement":
		if p := e.node.ParentElement(); p != nil {
			return e.ctx.elementProxy(p)
		}
		return goja.Null()
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, node: e.node})
	case "dataset":
		return vm.NewDynamicObject(&datasetAccessor{vm: vm, node: e.node})
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': 1 argument required"))
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': parameter 1 is not of type 'Node'"))
			}
			if child.Contains(e.node) {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': the new child contains the parent"))
			}
			e.node.AddChild(child)
			return call.Arguments[0]
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil || e.node.RemoveChild(child) == nil {
				panic(vm.NewTypeError("Failed to execute 'removeChild' on 'Node': the node is not a child of this node"))
			}
			return call.Arguments[0]
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := e.ctx.unwrapNode(call.Arguments[0])
			return vm.ToValue(other != nil && e.node.Contains(other))
		})
	case "offsetWidth":
		return vm.ToValue(e.node.OffsetWidth())
	case "offsetHeight":
		return vm.ToValue(e.node.OffsetHeight())
	case "getBoundingClientRect":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			r := e.node.BoundingClientRect()
			obj := vm.NewObject()
			obj.Set("x", r.X)
			obj.Set("y", r.Y)
			obj.Set("left", r.Left())
			obj.Set("top", r.Top())
			obj.Set("right", r.Right())
			obj.Set("bottom", r.Bottom())
			obj.Set("width", r.Width)
			obj.Set("height", r.Height)
			return obj
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			return e.ctx.elementArray(html.ElementsByClassName(e.node, call.Arguments[0].String()))
		})
	case "outerHTML":
		return vm.ToValue(e.node.SerializeOuter())
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "className":
		e.node.SetAttribute("class", val.String())
		return true
	case "id":
		e.node.SetAttribute("id", val.String())
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

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return append([]string(nil), elementKeys...)
}

// styleAccessor maps JS camelCase property access to CSS kebab-case on
// the node's inline style attribute, keeping declaration order.
type styleAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	val, _ := css.GetProperty(s.node, camelToKebab(key))
	return s.vm.ToValue(val)
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	v := strings.TrimSpace(val.String())
	if v == "" {
		css.RemoveProperty(s.node, camelToKebab(key))
		return true
	}
	css.SetProperty(s.node, camelToKebab(key), v)
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	css.RemoveProperty(s.node, camelToKebab(key))
	return true
}

func (s *styleAccessor) Keys() []string {
	return css.ElementStyle(s.node).Properties()
}

// datasetAccessor exposes data-* attributes under their camelCase keys.
type datasetAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

func (d *datasetAccessor) Get(key string) goja.Value {
	if val, ok := d.node.Dataset(key); ok {
		return d.vm.ToValue(val)
	}
	return goja.Undefined()
}

func (d *datasetAccessor) Set(key string, val goja.Value) bool {
	d.node.SetDataset(key, val.String())
	return true
}

func (d *datasetAccessor) Has(key string) bool {
	_, ok := d.node.Dataset(key)
	return ok
}

func (d *datasetAccessor) Delete(key string) bool {
	d.node.RemoveAttribute(html.DatasetAttribute(key))
	return true
}

func (d *datasetAccessor) Keys() []string {
	return d.node.DatasetKeys()
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
