package pulse

import "go.uber.org/zap"

// State is the lifecycle state of a component.
type State int

const (
	// Stable: caches are served as they are.
	Stable State = iota
	// Updating: scanners rebuild their caches from the tree.
	Updating
	// Destroyed is terminal.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case Updating:
		return "updating"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// State returns the current lifecycle state.
func (c *Component) State() State {
	return c.state
}

// Update rescans the container: options, then bindings, then refs, then
// templates. Safe to call repeatedly; bindings already wired are not wired
// again since their attributes are gone.
func (c *Component) Update() error {
	if c.state == Destroyed {
		return ErrDestroyed
	}

	c.state = Updating
	c.doc.resolveOptions(c.element, c.options)
	c.wireBindings(c.state)
	c.collectRefs(c.state)
	c.collectTemplates(c.state)
	c.state = Stable

	c.doc.logger.Debug("component updated",
		zap.String("selector", c.selector),
		zap.String("id", c.id),
		zap.Int("refs", len(c.refs)),
		zap.Int("templates", len(c.templates)))
	return nil
}
