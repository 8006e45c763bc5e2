// Package taskview turns a task collection into an element tree.
//
// Render is a pure function of its input. Board owns the rendered list:
// it assigns view keys, tracks elements that are fading out and derives the
// Empty/Populated state from what is still attached.
package taskview

import "taskboard/internal/service"

// Kind identifies an element in the rendered tree.
type Kind string

const (
	KindContainer Kind = "container"
	KindHeading   Kind = "heading"
	KindTask      Kind = "task"
	KindEmpty     Kind = "empty"
)

// Text shown by the heading and the empty-state placeholder.
const (
	HeadingText = "My tasks"
	EmptyText   = "You have no tasks"
)

// Class names carried by elements, shared with the page stylesheet.
const (
	ClassContainer = "my-tasks"
	ClassHeading   = "my-tasks-text"
	ClassTask      = "task"
	ClassFadeOut   = "fade-out"
	ClassEmpty     = "no-tasks-message"
)

// Node is one element of the rendered tree.
type Node struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Key      string   `json:"key,omitempty" yaml:"key,omitempty"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Content  string   `json:"content,omitempty" yaml:"content,omitempty"`
	Classes  []string `json:"classes,omitempty" yaml:"classes,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Item is a task as held by the view: the task plus its view key and
// whether it is on its way out.
type Item struct {
	Key    string
	Task   service.Task
	Fading bool
}

// Count returns how many direct children of n have kind k.
func (n Node) Count(k Kind) int {
	c := 0
	for _, child := range n.Children {
		if child.Kind == k {
			c++
		}
	}
	return c
}

// HasClass reports whether the node carries class.
func (n Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}
