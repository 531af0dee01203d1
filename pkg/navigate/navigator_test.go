package navigate

import (
	"errors"
	"testing"

	"github.com/pcranleigh/lintview/pkg/model"
)

// recordingOpener captures dispatched targets and optionally fails.
type recordingOpener struct {
	targets []Target
	err     error
}

func (o *recordingOpener) OpenAndScrollTo(file *model.ScannedFile, offset int) error {
	o.targets = append(o.targets, Target{File: file, Offset: offset})
	return o.err
}

func TestNavigatorSelectDispatches(t *testing.T) {
	node := problemNode(t, 17)
	opener := &recordingOpener{}
	nav := NewNavigator(NewResolver(), opener)

	if !nav.OnSelect(node) {
		t.Fatal("selection on a problem node should navigate")
	}
	if len(opener.targets) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(opener.targets))
	}
	if opener.targets[0].Offset != 17 {
		t.Errorf("dispatched offset %d, want 17", opener.targets[0].Offset)
	}
}

func TestNavigatorSelectInformational(t *testing.T) {
	opener := &recordingOpener{}
	nav := NewNavigator(NewResolver(), opener)

	if nav.OnSelect(nil) {
		t.Error("nil selection should not navigate")
	}
	if len(opener.targets) != 0 {
		t.Error("nothing should be dispatched for nil selection")
	}
}

func TestNavigatorAbsorbsOpenerErrors(t *testing.T) {
	node := problemNode(t, 1)
	opener := &recordingOpener{err: errors.New("file deleted")}
	nav := NewNavigator(NewResolver(), opener)

	// A failing opener is still a dispatched navigation; the error stops here.
	if !nav.OnSelect(node) {
		t.Error("opener failure must not surface as a failed navigation")
	}
}

func TestNavigatorActivateGating(t *testing.T) {
	node := problemNode(t, 9)
	opener := &recordingOpener{}
	nav := NewNavigator(NewResolver(), opener)
	loc := gridLocator{node: node}

	if nav.OnActivate(loc, 3, 5, 2) {
		t.Error("activation should not navigate while scroll-to-source is off")
	}
	nav.Resolver().SetScrollToSource(true)
	if !nav.OnActivate(loc, 3, 5, 2) {
		t.Error("activation should navigate once scroll-to-source is on")
	}
	if nav.OnActivate(loc, 9, 9, 2) {
		t.Error("activation outside any row should not navigate")
	}
	if len(opener.targets) != 1 {
		t.Errorf("expected exactly 1 dispatch, got %d", len(opener.targets))
	}
}

func TestNavigatorKeyboardActivate(t *testing.T) {
	node := problemNode(t, 9)
	opener := &recordingOpener{}
	nav := NewNavigator(NewResolver(), opener)

	if nav.Activate(node) {
		t.Error("keyboard activation must honor the scroll-to-source gate")
	}
	nav.Resolver().SetScrollToSource(true)
	if !nav.Activate(node) {
		t.Error("keyboard activation should navigate once enabled")
	}
	if nav.Activate(nil) {
		t.Error("activating nothing should not navigate")
	}
	if len(opener.targets) != 1 {
		t.Errorf("expected exactly 1 dispatch, got %d", len(opener.targets))
	}
}

func TestNavigatorNilOpener(t *testing.T) {
	node := problemNode(t, 9)
	nav := NewNavigator(NewResolver(), nil)

	// Headless: resolution happens, dispatch goes nowhere, no panic.
	if !nav.OnSelect(node) {
		t.Error("selection should still resolve with a nil opener")
	}
}
