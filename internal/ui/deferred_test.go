package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDeferredEqualityGating(t *testing.T) {
	d := NewDeferred(3)

	d.Set(3)
	if d.Apply() {
		t.Errorf("Apply after staging the committed value should be a no-op")
	}

	d.Set(5)
	if d.Get() != 3 {
		t.Errorf("Get before Apply = %d, want committed 3", d.Get())
	}
	if !d.Apply() {
		t.Fatalf("Apply should commit a differing value")
	}
	if d.Get() != 5 {
		t.Errorf("Get after Apply = %d, want 5", d.Get())
	}
	if d.Apply() {
		t.Errorf("second Apply without staging should return false")
	}
}

func TestDeferredRepeatedSetIsIdempotent(t *testing.T) {
	once := NewDeferred(mgl32.Vec2{1, 2})
	many := NewDeferred(mgl32.Vec2{1, 2})

	once.Set(mgl32.Vec2{4, 4})
	for i := 0; i < 5; i++ {
		many.Set(mgl32.Vec2{4, 4})
	}
	once.Apply()
	many.Apply()
	if once.Get() != many.Get() {
		t.Errorf("committed values differ: %v vs %v", once.Get(), many.Get())
	}
}

func TestDeferredLastIntentWins(t *testing.T) {
	d := NewDeferred("a")
	d.Set("b")
	d.Set("a")
	if d.Apply() {
		t.Errorf("staging the committed value should cancel the earlier write")
	}
	if d.Get() != "a" {
		t.Errorf("Get = %q, want a", d.Get())
	}
}

func TestDeferredForceSet(t *testing.T) {
	d := NewDeferred(1)
	d.Set(2)
	if !d.ForceSet(7) {
		t.Errorf("ForceSet(7) should report a change")
	}
	if d.Get() != 7 {
		t.Errorf("Get = %d, want 7", d.Get())
	}
	if d.Apply() {
		t.Errorf("ForceSet should discard the pending write")
	}
	if d.ForceSet(7) {
		t.Errorf("ForceSet of the same value should report no change")
	}
}

func TestDeferredWithoutEqualityAlwaysChanges(t *testing.T) {
	d := NewDeferredFunc([]int{1}, nil)
	d.Set([]int{1})
	if !d.Apply() {
		t.Errorf("cell without equality should treat every write as a change")
	}
}

func TestDeferredModify(t *testing.T) {
	d := NewDeferred(10)
	d.Modify(func(v int) int { return v * 2 })
	if d.Get() != 10 {
		t.Errorf("Modify must stage, not commit")
	}
	d.Apply()
	if d.Get() != 20 {
		t.Errorf("Get = %d, want 20", d.Get())
	}
}
