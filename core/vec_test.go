package core

import (
	"math"
	"testing"
)

func TestVec2Normalized(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	n := v.Normalized()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	zero := Vec2{}
	if !zero.Normalized().IsZero() {
		t.Error("Normalizing zero vector should return zero vector")
	}
}

func TestVec2ClampLength(t *testing.T) {
	v := Vec2{X: 6, Y: 8}
	clamped := v.ClampLength(5)
	if math.Abs(clamped.Length()-5) > 1e-9 {
		t.Errorf("Expected clamped length 5, got %f", clamped.Length())
	}

	// Under the limit: unchanged
	small := Vec2{X: 1, Y: 1}
	if small.ClampLength(5) != small {
		t.Error("Vector under limit should pass through unchanged")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLogic.String() != "logic" || PhasePhysics.String() != "physics" {
		t.Errorf("Unexpected phase names: %s, %s", PhaseLogic, PhasePhysics)
	}
}
