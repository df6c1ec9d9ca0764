package flit

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestBouncePullAccumulatesWithResistance(t *testing.T) {
	a := NewItem("a")
	b := NewItem("b")
	bounce := NewBounce(a, b)

	bounce.Pull(10)
	bounce.Pull(10)
	if bounce.Offset() != 10 {
		t.Errorf("offset = %v, want 10 (default resistance 0.5)", bounce.Offset())
	}
	if a.OffsetY != 10 || b.OffsetY != 10 {
		t.Errorf("item offsets = (%v, %v), want (10, 10)", a.OffsetY, b.OffsetY)
	}
}

func TestBounceReleaseSpringsBackToZero(t *testing.T) {
	it := NewItem("a")
	bounce := NewBounce(it)
	bounce.Ease = ease.Linear

	bounce.Pull(40) // offset 20
	bounce.Release()
	if !bounce.Active() {
		t.Fatal("spring-back should be active after Release")
	}

	bounce.Update(0.15)
	bounce.Update(0.15)
	if bounce.Active() {
		t.Error("spring-back should be done after the full duration")
	}
	if bounce.Offset() != 0 {
		t.Errorf("offset = %v, want 0", bounce.Offset())
	}
	if math.Abs(it.OffsetY) > 0.01 {
		t.Errorf("item offsetY = %v, want 0", it.OffsetY)
	}
}

func TestBounceReleaseWithoutPullIsNoop(t *testing.T) {
	bounce := NewBounce(NewItem("a"))
	bounce.Release()
	if bounce.Active() {
		t.Error("nothing to spring back")
	}
}

func TestBouncePullAbandonsSpringBack(t *testing.T) {
	it := NewItem("a")
	bounce := NewBounce(it)
	bounce.Ease = ease.Linear

	bounce.Pull(40)
	bounce.Release()
	bounce.Update(0.1)
	bounce.Pull(10)
	if bounce.Active() {
		t.Error("a new pull should abandon the spring-back")
	}
	if it.OffsetY != bounce.Offset() {
		t.Errorf("item offset %v diverged from bounce offset %v", it.OffsetY, bounce.Offset())
	}
}
