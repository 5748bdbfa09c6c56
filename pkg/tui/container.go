// ABOUTME: Container is an ordered collection of child Components stacked vertically
// ABOUTME: Keys go to children from last to first until one consumes them

package tui

import "github.com/mauromedda/termroot/pkg/tui/key"

// Container holds an ordered list of child components. It is not safe for
// concurrent use: mutate it from the loop goroutine, e.g. via
// App.QueueUpdate.
type Container struct {
	children []Component
}

// NewContainer creates an empty Container.
func NewContainer(children ...Component) *Container {
	return &Container{children: children}
}

// Add appends a component to the container.
func (c *Container) Add(comp Component) {
	c.children = append(c.children, comp)
}

// Remove removes a component from the container.
// Returns true if the component was found and removed.
func (c *Container) Remove(comp Component) bool {
	for i, child := range c.children {
		if child == comp {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all children.
func (c *Container) Clear() {
	c.children = c.children[:0]
}

// Children returns a snapshot of the current children.
func (c *Container) Children() []Component {
	out := make([]Component, len(c.children))
	copy(out, c.children)
	return out
}

// Render renders all children top to bottom into the buffer.
func (c *Container) Render(out *RenderBuffer, width int) {
	for _, child := range c.children {
		child.Render(out, width)
	}
}

// Invalidate invalidates all children.
func (c *Container) Invalidate() {
	for _, child := range c.children {
		child.Invalidate()
	}
}

// HandleKey offers k to each KeyHandler child, last added first.
func (c *Container) HandleKey(a *App, k key.Key) bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		if h, ok := c.children[i].(KeyHandler); ok && h.HandleKey(a, k) {
			return true
		}
	}
	return false
}
