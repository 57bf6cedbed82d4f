package godeck

import "errors"

// Frame is a fixed-size drawing surface holding one slide's visual nodes.
// Children are drawn in append order: later nodes draw on top.
type Frame struct {
	name       string
	width      float64
	height     float64
	background *Paint
	children   []Node
	notes      string
}

// NewFrame creates an empty frame of the given pixel size.
func NewFrame(width, height float64) *Frame {
	return &Frame{
		width:    width,
		height:   height,
		children: make([]Node, 0, 32),
	}
}

func (f *Frame) GetName() string     { return f.name }
func (f *Frame) GetWidth() float64   { return f.width }
func (f *Frame) GetHeight() float64  { return f.height }
func (f *Frame) GetNotes() string    { return f.notes }
func (f *Frame) GetChildren() []Node { return f.children }
func (f *Frame) GetChildCount() int  { return len(f.children) }

// SetName sets the frame name.
func (f *Frame) SetName(name string) *Frame { f.name = name; return f }

// SetNotes sets presenter notes. Notes are exported but never drawn.
func (f *Frame) SetNotes(notes string) *Frame { f.notes = notes; return f }

// SetBackground sets the frame background paint.
func (f *Frame) SetBackground(p Paint) *Frame {
	f.background = &p
	return f
}

// GetBackground returns the frame background paint, or nil if unset.
func (f *Frame) GetBackground() *Paint { return f.background }

// AppendChild appends a node on top of the existing children and returns it.
func (f *Frame) AppendChild(n Node) Node {
	if n == nil {
		return nil
	}
	f.children = append(f.children, n)
	return n
}

// RemoveChild removes the child at index.
func (f *Frame) RemoveChild(index int) error {
	if index < 0 || index >= len(f.children) {
		return errors.New("child index out of range")
	}
	f.children = append(f.children[:index], f.children[index+1:]...)
	return nil
}

// ChildrenOfType returns the children of the given node type in z-order.
func (f *Frame) ChildrenOfType(t NodeType) []Node {
	var out []Node
	for _, c := range f.children {
		if c.GetType() == t {
			out = append(out, c)
		}
	}
	return out
}

// ExtractText returns the characters of all text nodes in z-order.
func (f *Frame) ExtractText() []string {
	var out []string
	for _, c := range f.children {
		if t, ok := c.(*TextNode); ok {
			out = append(out, t.characters)
		}
	}
	return out
}
