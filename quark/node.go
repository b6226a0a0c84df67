package quark

import "github.com/google/uuid"

// Node is an element of a scene graph. Every node type embeds an Object.
type Node interface {
	Base() *Object
}

// Object holds the transform and hierarchy shared by all nodes.
//
// A node has at most one parent; adding it somewhere else detaches it first,
// so the graph stays a tree.
type Object struct {
	ID   uuid.UUID
	Name string

	Position Vec3
	Rotation Vec3 // Euler angles in radians, XYZ order.
	Scale    Vec3
	Visible  bool

	self     Node
	parent   *Object
	children []Node
}

func (o *Object) Base() *Object { return o }

func (o *Object) init(self Node, name string) {
	o.ID = uuid.New()
	o.Name = name
	o.Scale = V3(1, 1, 1)
	o.Visible = true
	o.self = self
}

// Parent returns the parent node or nil.
func (o *Object) Parent() Node {
	if o.parent == nil {
		return nil
	}
	return o.parent.self
}

// Children returns a copy of the immediate descendants.
func (o *Object) Children() []Node {
	out := make([]Node, len(o.children))
	copy(out, o.children)
	return out
}

// Add appends nodes as immediate descendants of o. Nil nodes, o itself and
// ancestors of o are ignored.
func (o *Object) Add(nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		c := n.Base()
		if c == nil || c == o || c.isAncestorOf(o) {
			continue
		}
		if c.self == nil {
			c.self = n
		}
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = o
		o.children = append(o.children, n)
	}
}

// Remove detaches nodes that are immediate descendants of o.
func (o *Object) Remove(nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if c := n.Base(); c != nil && c.parent == o {
			o.remove(c)
		}
	}
}

// Clear detaches every child.
func (o *Object) Clear() {
	for _, n := range o.children {
		n.Base().parent = nil
	}
	o.children = nil
}

func (o *Object) remove(c *Object) {
	for i, n := range o.children {
		if n.Base() == c {
			o.children = append(o.children[:i:i], o.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (o *Object) isAncestorOf(n *Object) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == o {
			return true
		}
	}
	return false
}

// Local returns the local transform.
func (o *Object) Local() Mat4 { return Compose(o.Position, o.Rotation, o.Scale) }

// World returns the transform from local space to the root's space.
func (o *Object) World() Mat4 {
	m := o.Local()
	for p := o.parent; p != nil; p = p.parent {
		m = p.Local().Mul(m)
	}
	return m
}

// Traverse calls fn for root and every descendant, parents before children.
// Children added or removed by fn take effect for nodes not yet reached.
func Traverse(root Node, fn func(Node)) {
	if root == nil || root.Base() == nil {
		return
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		cs := n.Base().children
		for i := len(cs) - 1; i >= 0; i-- {
			stack = append(stack, cs[i])
		}
	}
}

// Group is a node with no content of its own.
type Group struct {
	Object
}

func NewGroup(name string) *Group {
	g := &Group{}
	g.init(g, name)
	return g
}
