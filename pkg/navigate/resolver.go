// Package navigate turns tree-node selection and activation events into
// "open this document at this offset" commands for an editor collaborator.
// Every failure on this path is absorbed here: a navigation that cannot
// happen degrades to nothing happening, never to an error the tree or
// display logic sees.
package navigate

import (
	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/results"
)

// Trigger distinguishes how the user asked for navigation.
type Trigger int

const (
	// TriggerSelect is a tree-selection-changed event. Selection always
	// navigates, regardless of the scroll-to-source setting.
	TriggerSelect Trigger = iota
	// TriggerActivate is a double-activation (double-click). Activation
	// navigates only when scroll-to-source is enabled.
	TriggerActivate
)

// ActivationClicks is the click count an activation must reach.
const ActivationClicks = 2

// Target instructs the host editor where to position the caret.
type Target struct {
	File   *model.ScannedFile
	Offset int
}

// RowLocator maps screen coordinates to the tree node rendered there, nil
// when the coordinates are not over any row. The concrete tree view
// implements this.
type RowLocator interface {
	NodeAt(x, y int) *results.Node
}

// Resolver decides whether an event produces a navigation target. It holds
// the scroll-to-source toggle; the asymmetry that the toggle gates only
// activation, not selection, is deliberate and covered by tests.
type Resolver struct {
	scrollToSource bool
}

// NewResolver returns a resolver with scroll-to-source disabled.
func NewResolver() *Resolver {
	return &Resolver{}
}

// SetScrollToSource toggles activation-driven navigation.
func (r *Resolver) SetScrollToSource(enabled bool) {
	r.scrollToSource = enabled
}

// ScrollToSource reports the current toggle state.
func (r *Resolver) ScrollToSource() bool {
	return r.scrollToSource
}

// Resolve maps an event on a node to a navigation target. It returns false
// for nil or informational nodes, and for activations while scroll-to-source
// is disabled.
func (r *Resolver) Resolve(node *results.Node, trigger Trigger) (Target, bool) {
	if !node.Navigable() {
		return Target{}, false
	}
	if trigger == TriggerActivate && !r.scrollToSource {
		return Target{}, false
	}
	return Target{File: node.File, Offset: node.Problem.Offset()}, true
}

// ResolveActivation maps a click at screen coordinates to a navigation
// target. Clicks below the double-activation threshold and clicks outside
// any row resolve to nothing, regardless of settings.
func (r *Resolver) ResolveActivation(locator RowLocator, x, y, clicks int) (Target, bool) {
	if clicks < ActivationClicks || locator == nil {
		return Target{}, false
	}
	node := locator.NodeAt(x, y)
	if node == nil {
		return Target{}, false
	}
	return r.Resolve(node, TriggerActivate)
}
