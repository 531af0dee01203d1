package navigate

import (
	"github.com/pcranleigh/lintview/pkg/debug"
	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/results"
)

// Opener is the external document/editor collaborator. OpenAndScrollTo is
// best-effort: it opens or focuses an editor on the file, moves the caret
// to the byte offset, and scrolls it to the vertical center. Implementations
// that cannot place a caret simply open the file.
type Opener interface {
	OpenAndScrollTo(file *model.ScannedFile, offset int) error
}

// Navigator connects the resolver to an opener and absorbs every failure on
// the way. It is the single place where navigation side effects happen, so
// nothing on this path can re-enter tree building.
type Navigator struct {
	resolver *Resolver
	opener   Opener
}

// NewNavigator wires a resolver to an opener. A nil opener produces a
// navigator whose navigations resolve but go nowhere, which is what
// headless modes want.
func NewNavigator(resolver *Resolver, opener Opener) *Navigator {
	return &Navigator{resolver: resolver, opener: opener}
}

// Resolver exposes the underlying resolver for settings access.
func (n *Navigator) Resolver() *Resolver {
	return n.resolver
}

// OnSelect handles a tree-selection-changed event. Returns whether a
// navigation was dispatched.
func (n *Navigator) OnSelect(node *results.Node) bool {
	target, ok := n.resolver.Resolve(node, TriggerSelect)
	if !ok {
		return false
	}
	return n.dispatch(target)
}

// Activate handles a keyboard activation of an already-selected node. It
// goes through the same gate as a double-click.
func (n *Navigator) Activate(node *results.Node) bool {
	target, ok := n.resolver.Resolve(node, TriggerActivate)
	if !ok {
		return false
	}
	return n.dispatch(target)
}

// OnActivate handles a click at screen coordinates with the given click
// count. Returns whether a navigation was dispatched.
func (n *Navigator) OnActivate(locator RowLocator, x, y, clicks int) bool {
	target, ok := n.resolver.ResolveActivation(locator, x, y, clicks)
	if !ok {
		return false
	}
	return n.dispatch(target)
}

// dispatch performs the side effect. Opener errors are logged when debug
// output is on and otherwise dropped; a missing document or a non-text
// editor target is not an error condition here.
func (n *Navigator) dispatch(target Target) bool {
	if n.opener == nil {
		return true
	}
	if err := n.opener.OpenAndScrollTo(target.File, target.Offset); err != nil {
		debug.Log("navigation to %s@%d skipped: %v", target.File.Path, target.Offset, err)
	}
	return true
}
