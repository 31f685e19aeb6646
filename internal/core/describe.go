package core

import "fmt"

// Snapshot is a read-only view of a scope subtree.
type Snapshot struct {
	Namespace  string     `json:"namespace"`
	Components []string   `json:"components,omitempty"`
	Children   []Snapshot `json:"children,omitempty"`
}

// Describe captures c and its descendants in traversal order.
func Describe(c Context) Snapshot {
	s := Snapshot{Namespace: c.Namespace()}
	for _, comp := range c.Components() {
		s.Components = append(s.Components, fmt.Sprintf("%T", comp))
	}
	for _, child := range c.Children() {
		s.Children = append(s.Children, Describe(child))
	}
	return s
}

// Walk visits c and its descendants depth-first, parents before children.
// Returning an error from fn stops the walk.
func Walk(c Context, fn func(Context) error) error {
	if err := fn(c); err != nil {
		return err
	}
	for _, child := range c.Children() {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
