package main

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCheckCollision(t *testing.T) {
	// Overlapping circles
	if !CheckCollision(cp.Vector{}, 10, cp.Vector{X: 15}, 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Touching circles
	if !CheckCollision(cp.Vector{}, 10, cp.Vector{X: 20}, 10) {
		t.Error("circles should collide (touching)")
	}

	// Non-overlapping circles
	if CheckCollision(cp.Vector{}, 10, cp.Vector{X: 25}, 10) {
		t.Error("circles should not collide")
	}

	// Same position
	if !CheckCollision(cp.Vector{X: 5, Y: 5}, 1, cp.Vector{X: 5, Y: 5}, 1) {
		t.Error("same position should collide")
	}
}

func TestCollidesSymmetric(t *testing.T) {
	a := NewBody(cp.Vector{X: 1, Y: 2}, 3, 1, 0, cp.Vector{})
	b := NewBody(cp.Vector{X: 5, Y: 4}, 2, 1, 0, cp.Vector{})
	c := NewBody(cp.Vector{X: 50, Y: 50}, 2, 1, 0, cp.Vector{})
	if a.Collides(b) != b.Collides(a) {
		t.Error("collision should be symmetric")
	}
	if !a.Collides(b) {
		t.Error("expected a and b to collide")
	}
	if a.Collides(c) || c.Collides(a) {
		t.Error("expected a and c not to collide")
	}
}

func TestFieldFromAsymmetric(t *testing.T) {
	a := NewBody(cp.Vector{X: 0, Y: 0}, 1, 1, 1, cp.Vector{})
	b := NewBody(cp.Vector{X: 0, Y: 1}, 1, 1, 2, cp.Vector{})

	// At distance 1 with radius 1 neither is inside the other's radius
	ab := a.FieldFrom(b)
	if math.Abs(ab.X) > 1e-12 || math.Abs(ab.Y-2) > 1e-12 {
		t.Errorf("expected (0, 2), got %v", ab)
	}
	ba := b.FieldFrom(a)
	if math.Abs(ba.X) > 1e-12 || math.Abs(ba.Y+1) > 1e-12 {
		t.Errorf("expected (0, -1), got %v", ba)
	}
}

func TestFieldFromInsideRadius(t *testing.T) {
	a := NewBody(cp.Vector{X: 0, Y: 0}, 1, 1, 1, cp.Vector{})
	big := NewBody(cp.Vector{X: 0, Y: 1}, 5, 1, 100, cp.Vector{})
	if f := a.FieldFrom(big); f != (cp.Vector{}) {
		t.Errorf("expected zero field inside radius, got %v", f)
	}
	if f := a.FieldFrom(a); f != (cp.Vector{}) {
		t.Errorf("expected zero self field, got %v", f)
	}
}

func TestSumFieldsSkipsSelf(t *testing.T) {
	planets := []Planet{
		NewPlanet(NewBody(cp.Vector{X: 0, Y: 0}, 0, 1, 5, cp.Vector{})),
		NewPlanet(NewBody(cp.Vector{X: 2, Y: 0}, 0, 1, 4, cp.Vector{})),
	}
	total := SumFields(&planets[0].Body, planets)
	if math.Abs(total.X-1) > 1e-12 || math.Abs(total.Y) > 1e-12 {
		t.Errorf("expected (1, 0), got %v", total)
	}

	// A copy at the same location is a different body and counts
	probe := planets[0].Body
	total = SumFields(&probe, planets)
	if math.Abs(total.X-1) > 1e-12 {
		t.Errorf("expected (1, 0) for a detached copy, got %v", total)
	}
}

func TestIntegrateMassless(t *testing.T) {
	b := NewBody(cp.Vector{X: 5, Y: 5}, 1, 0, 0, cp.Vector{X: 1})
	b.Acceleration = cp.Vector{Y: 2}
	b.Integrate(1, cp.Vector{X: 100, Y: 100}, cp.Vector{X: 100, Y: 100}, BoundaryClamp)

	if b.Acceleration != (cp.Vector{Y: 2}) {
		t.Errorf("expected acceleration unchanged, got %v", b.Acceleration)
	}
	if b.Velocity != (cp.Vector{X: 1, Y: 2}) {
		t.Errorf("expected velocity (1, 2), got %v", b.Velocity)
	}
	if b.Location != (cp.Vector{X: 6, Y: 7}) {
		t.Errorf("expected location (6, 7), got %v", b.Location)
	}
}

func TestIntegrateAcceleration(t *testing.T) {
	b := NewBody(cp.Vector{X: 5, Y: 5}, 1, 2, 0, cp.Vector{})
	b.Integrate(0.5, cp.Vector{X: 4}, cp.Vector{X: 100, Y: 100}, BoundaryClamp)

	if b.Acceleration != (cp.Vector{X: 2}) {
		t.Errorf("expected acceleration (2, 0), got %v", b.Acceleration)
	}
	if b.Velocity != (cp.Vector{X: 1}) {
		t.Errorf("expected velocity (1, 0), got %v", b.Velocity)
	}
	if b.Location != (cp.Vector{X: 5.5, Y: 5}) {
		t.Errorf("expected location (5.5, 5), got %v", b.Location)
	}
}

func TestIntegrateClamp(t *testing.T) {
	size := cp.Vector{X: 10, Y: 10}
	b := NewBody(cp.Vector{X: 9, Y: 5}, 1, 1, 0, cp.Vector{X: 5, Y: 1})
	b.Integrate(1, cp.Vector{}, size, BoundaryClamp)

	if b.Location != (cp.Vector{X: 10, Y: 6}) {
		t.Errorf("expected location (10, 6), got %v", b.Location)
	}
	if b.Velocity.X != 0 {
		t.Errorf("expected x velocity 0, got %f", b.Velocity.X)
	}
	if b.Velocity.Y != 1 {
		t.Errorf("expected y velocity untouched, got %f", b.Velocity.Y)
	}
}

func TestIntegrateBounce(t *testing.T) {
	size := cp.Vector{X: 10, Y: 10}
	b := NewBody(cp.Vector{X: 5, Y: 1}, 1, 1, 0, cp.Vector{X: 1, Y: -3})
	b.Integrate(1, cp.Vector{}, size, BoundaryBounce)

	if b.Location != (cp.Vector{X: 6, Y: 0}) {
		t.Errorf("expected location (6, 0), got %v", b.Location)
	}
	if b.Velocity != (cp.Vector{X: 1, Y: 3}) {
		t.Errorf("expected velocity (1, 3), got %v", b.Velocity)
	}
}

func TestInside(t *testing.T) {
	size := cp.Vector{X: 10, Y: 10}
	cases := []struct {
		loc  cp.Vector
		want bool
	}{
		{cp.Vector{X: 5, Y: 5}, true},
		{cp.Vector{X: 0, Y: 5}, false},
		{cp.Vector{X: 10, Y: 5}, false},
		{cp.Vector{X: 5, Y: -1}, false},
	}
	for _, c := range cases {
		b := Body{Location: c.loc}
		if got := b.Inside(size); got != c.want {
			t.Errorf("Inside(%v): expected %v, got %v", c.loc, c.want, got)
		}
	}
}

func TestParseBoundaryPolicy(t *testing.T) {
	for name, want := range map[string]BoundaryPolicy{"": BoundaryClamp, "clamp": BoundaryClamp, "bounce": BoundaryBounce} {
		got, err := ParseBoundaryPolicy(name)
		if err != nil || got != want {
			t.Errorf("ParseBoundaryPolicy(%q): expected %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := ParseBoundaryPolicy("wrap"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
