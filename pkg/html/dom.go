package html

import (
	"sort"
	"strings"
	"unicode"

	"mouseparallax/pkg/event"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node

	// Layout is the border box assigned by the last layout pass, in
	// viewport coordinates. Nil until the node has been laid out.
	Layout *Rect

	doc *Document // set on the root node only
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Document is the root of a parsed page. It is also the event target that
// pointer sources dispatch mousemove/touchmove events to.
type Document struct {
	event.Dispatcher

	Root        *Node
	Scripts     []string // JavaScript from <script> tags
	Stylesheets []string // CSS from <style> tags
}

func NewDocument() *Document {
	d := &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Scripts: make([]string, 0),
	}
	d.Root.doc = d
	return d
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

func (n *Node) RemoveAttribute(name string) {
	delete(n.Attributes, name)
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// HasClass reports whether the element's class list contains cls.
func (n *Node) HasClass(cls string) bool {
	classes, ok := n.GetAttribute("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == cls {
			return true
		}
	}
	return false
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.Children = append(n.Children, &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	})
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	for ; other != nil; other = other.Parent {
		if other == n {
			return true
		}
	}
	return false
}

// OwnerDocument returns the document n is attached to, or nil for a
// detached subtree.
func (n *Node) OwnerDocument() *Document {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	return top.doc
}

// ParentElement returns the parent element, or nil when the parent is the
// document root or n is detached.
func (n *Node) ParentElement() *Node {
	if n.Parent == nil || n.Parent.doc != nil {
		return nil
	}
	return n.Parent
}

// Dataset returns the value of the data-* attribute behind a camelCase
// dataset key: "parallaxRuleIntensityX" reads data-parallax-rule-intensity-x.
func (n *Node) Dataset(key string) (string, bool) {
	return n.GetAttribute(DatasetAttribute(key))
}

// SetDataset writes the data-* attribute behind a camelCase dataset key.
func (n *Node) SetDataset(key, value string) {
	n.SetAttribute(DatasetAttribute(key), value)
}

// DatasetKeys returns the camelCase keys of every data-* attribute, sorted.
func (n *Node) DatasetKeys() []string {
	var keys []string
	for name := range n.Attributes {
		if strings.HasPrefix(name, "data-") {
			keys = append(keys, datasetKey(name))
		}
	}
	sort.Strings(keys)
	return keys
}

// DatasetAttribute maps a camelCase dataset key to its attribute name.
func DatasetAttribute(key string) string {
	var sb strings.Builder
	sb.WriteString("data-")
	for _, r := range key {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func datasetKey(attr string) string {
	name := strings.TrimPrefix(attr, "data-")
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BoundingClientRect returns the node's laid-out box, or a zero rect if it
// has not been laid out.
func (n *Node) BoundingClientRect() Rect {
	if n.Layout == nil {
		return Rect{}
	}
	return *n.Layout
}

// OffsetWidth is the laid-out border-box width.
func (n *Node) OffsetWidth() float64 {
	return n.BoundingClientRect().Width
}

// OffsetHeight is the laid-out border-box height.
func (n *Node) OffsetHeight() float64 {
	return n.BoundingClientRect().Height
}

// Serialize returns the innerHTML of this node.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the outerHTML of this node.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(n.Attributes[k]))
		sb.WriteByte('"')
	}

	sb.WriteByte('>')
	if isVoidElement(n.TagName) {
		return
	}
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

var (
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
