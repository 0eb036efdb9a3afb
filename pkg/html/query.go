package html

// GetElementByID walks the tree and returns the first element with a
// matching id.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	walkElements(d.Root, func(n *Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// GetElementsByClassName collects all elements carrying cls, in document order.
func (d *Document) GetElementsByClassName(cls string) []*Node {
	return ElementsByClassName(d.Root, cls)
}

// GetElementsByTagName collects all elements named tag, in document order.
func (d *Document) GetElementsByTagName(tag string) []*Node {
	var result []*Node
	walkElements(d.Root, func(n *Node) bool {
		if n.TagName == tag {
			result = append(result, n)
		}
		return true
	})
	return result
}

// Body returns the <body> element, if any.
func (d *Document) Body() *Node {
	if nodes := d.GetElementsByTagName("body"); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// ElementsByClassName collects the descendants of root (excluding root)
// carrying cls.
func ElementsByClassName(root *Node, cls string) []*Node {
	var result []*Node
	for _, child := range root.Children {
		walkElements(child, func(n *Node) bool {
			if n.HasClass(cls) {
				result = append(result, n)
			}
			return true
		})
	}
	return result
}

// walkElements visits element nodes depth-first until visit returns false.
func walkElements(n *Node, visit func(*Node) bool) bool {
	if n.Type == ElementNode && n.doc == nil {
		if !visit(n) {
			return false
		}
	}
	for _, child := range n.Children {
		if !walkElements(child, visit) {
			return false
		}
	}
	return true
}
