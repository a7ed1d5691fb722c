// Package console models the dashboard's output console: an append-only
// scrollback of lines, each made of typed nodes. Nodes carry plain text only;
// the page template escapes everything, so nothing typed by a user is ever
// interpreted as markup.
package console

// Kind tags a Node.
type Kind string

const (
	KindText Kind = "text"
	KindSpan Kind = "span"
	KindForm Kind = "form"
)

// CSS classes used by the built-in commands.
const (
	ClassHeader = "output-header"
	ClassKey    = "output-key"
	ClassSep    = "output-sep"
)

// Node is one piece of a line.
type Node struct {
	Kind  Kind
	Class string
	Text  string
	Form  *Form
}

// Form is the color configuration panel rendered by the config command.
type Form struct {
	Action      string
	ResetAction string
	Fields      []Field
}

// Field is one text input of a Form.
type Field struct {
	Name        string
	Label       string
	Placeholder string
}

// Text is an unstyled text node.
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// Span is a text node with a CSS class.
func Span(class, s string) Node { return Node{Kind: KindSpan, Class: class, Text: s} }

// Header, Key and Sep are the spans the commands are built from.
func Header(s string) Node { return Span(ClassHeader, s) }
func Key(s string) Node    { return Span(ClassKey, s) }
func Sep(s string) Node    { return Span(ClassSep, s) }

// FormNode wraps a form.
func FormNode(f Form) Node { return Node{Kind: KindForm, Form: &f} }

// Line is one rendered row of the console.
type Line struct {
	Nodes []Node
}

// Blank reports whether the line renders as an empty row.
func (l Line) Blank() bool { return len(l.Nodes) == 0 }

// Console is the scrollback buffer of a single page view.
type Console struct {
	lines []Line
}

// New returns an empty console.
func New() *Console {
	return &Console{}
}

// Add appends one line made of nodes. Add() with no nodes appends a blank line.
func (c *Console) Add(nodes ...Node) {
	line := Line{Nodes: make([]Node, len(nodes))}
	copy(line.Nodes, nodes)
	c.lines = append(c.lines, line)
}

// Clear removes every line.
func (c *Console) Clear() {
	c.lines = nil
}

// Lines returns a copy of the scrollback, oldest first.
func (c *Console) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Console) Len() int {
	return len(c.lines)
}

// Plain flattens the console to text, one line per row. Forms render as
// their field labels. The dispatcher logs it at debug level.
func (c *Console) Plain() []string {
	out := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		var s string
		for _, n := range line.Nodes {
			switch n.Kind {
			case KindForm:
				for i, f := range n.Form.Fields {
					if i > 0 {
						s += " "
					}
					s += f.Label + ":"
				}
			default:
				s += n.Text
			}
		}
		out = append(out, s)
	}
	return out
}
