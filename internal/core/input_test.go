package core

import "testing"

func TestInputFrameClearKeepsCapacity(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	f.Click(3, 4)

	if !f.Has(ActionFire) {
		t.Fatal("expected fire action to be set")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Cell{X: 3, Y: 4}) {
		t.Fatalf("unexpected clicks %v", f.Clicks)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionFire) || len(f.Clicks) != 0 {
		t.Error("Clear should drop actions and clicks")
	}
	if !clone.Has(ActionFire) || len(clone.Clicks) != 1 {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate the action map")
	}
}
