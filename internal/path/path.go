// Package path implements the traversal cursor the translator threads through the AST: a stack of
// alternating (propertyName, value) frames that lets per-node printers inspect their ancestry
// (for the parenthesization oracle and the comment engine) without the tree itself carrying parent
// pointers.
package path

import "github.com/crogenix/tsfmt/ast"

// Frame is one entry of the cursor's stack: the value of an AST node together with the name of
// the struct field (or array) it was reached through, as seen from its parent.
type Frame struct {
	Name  string
	Value ast.Node
}

// Path is the traversal cursor. It is single-threaded and mutates in place; callers never retain
// it beyond the dynamic extent of a Call/Each invocation, since the stack is only valid for
// the duration of that call.
type Path struct {
	stack []Frame
}

// New creates a Path rooted at root.
func New(root ast.Node) *Path {
	return &Path{stack: []Frame{{Value: root}}}
}

// Value returns the node currently at the top of the cursor.
func (p *Path) Value() ast.Node {
	return p.stack[len(p.stack)-1].Value
}

// Name returns the property name (or array name) by which the current node is referenced from
// its parent. It is empty for the root.
func (p *Path) Name() string {
	return p.stack[len(p.stack)-1].Name
}

// Node returns the k-th nearest ancestor, where Node(0) is the current node, Node(1) its parent,
// and so on. It returns nil once k exceeds the depth of the stack.
func (p *Path) Node(k int) ast.Node {
	i := len(p.stack) - 1 - k
	if i < 0 {
		return nil
	}
	return p.stack[i].Value
}

// ParentNode returns the k-th ancestor above the current node's immediate parent; ParentNode(0)
// is the same as Node(1).
func (p *Path) ParentNode(k int) ast.Node {
	return p.Node(k + 1)
}

// NameAt returns the property name recorded k levels up from the current node.
func (p *Path) NameAt(k int) string {
	i := len(p.stack) - 1 - k
	if i < 0 {
		return ""
	}
	return p.stack[i].Name
}

// Depth reports how many frames are currently on the stack.
func (p *Path) Depth() int {
	return len(p.stack)
}

// Call pushes a single named child onto the cursor, invokes fn with the cursor now pointing at
// that child, and pops the frame on every exit path (including a panic unwinding through fn), so
// the stack is always restored to its depth on entry.
func (p *Path) Call(name string, value ast.Node, fn func()) {
	if value == nil {
		return
	}
	p.stack = append(p.stack, Frame{Name: name, Value: value})
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()
	fn()
}

// Each iterates an ordered sequence of named children, pushing and popping a frame for each
// non-nil entry in turn before invoking fn with that entry's index.
func (p *Path) Each(name string, values []ast.Node, fn func(i int)) {
	for i, v := range values {
		if v == nil {
			continue
		}
		p.stack = append(p.stack, Frame{Name: name, Value: v})
		fn(i)
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// NeedsParens invokes the parenthesization oracle on the node currently at the top of the cursor.
func (p *Path) NeedsParens() bool {
	return needsParens(p)
}
