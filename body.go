package main

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// minFieldDistance keeps coincident bodies from producing an infinite pull
const minFieldDistance = 1e-9

// BoundaryPolicy decides what happens to a body that crosses the edge of the domain
type BoundaryPolicy int

const (
	// BoundaryClamp pins the body to the edge and stops it on the violated axis
	BoundaryClamp BoundaryPolicy = iota
	// BoundaryBounce pins the body to the edge and reflects it on the violated axis
	BoundaryBounce
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryClamp:
		return "clamp"
	case BoundaryBounce:
		return "bounce"
	}
	return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
}

// ParseBoundaryPolicy maps a map-file name to a policy. Empty means clamp.
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	switch name {
	case "", "clamp":
		return BoundaryClamp, nil
	case "bounce":
		return BoundaryBounce, nil
	}
	return BoundaryClamp, fmt.Errorf("unknown boundary policy %q", name)
}

// Body is the kinetic state shared by every simulated entity
type Body struct {
	Location     cp.Vector
	Velocity     cp.Vector
	Acceleration cp.Vector
	Radius       float64
	Mass         float64
	Field        float64 // strength of the pull this body exerts on others
}

// NewBody creates a body at rest apart from the given velocity
func NewBody(location cp.Vector, radius, mass, field float64, velocity cp.Vector) Body {
	return Body{
		Location: location,
		Velocity: velocity,
		Radius:   radius,
		Mass:     mass,
		Field:    field,
	}
}

// Integrate advances the body by dt under the accumulated field.
// Massless bodies keep their acceleration and only drift.
func (b *Body) Integrate(dt float64, totalField, size cp.Vector, policy BoundaryPolicy) {
	if b.Mass != 0 {
		b.Acceleration = totalField.Mult(1 / b.Mass)
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Mult(dt))
	b.Location = b.Location.Add(b.Velocity.Mult(dt))
	b.bound(size, policy)
}

func (b *Body) bound(size cp.Vector, policy BoundaryPolicy) {
	if b.Location.X < 0 || b.Location.X > size.X {
		b.Velocity.X = edgeVelocity(b.Velocity.X, policy)
		b.Acceleration.X = 0
		b.Location.X = Clamp(b.Location.X, 0, size.X)
	}
	if b.Location.Y < 0 || b.Location.Y > size.Y {
		b.Velocity.Y = edgeVelocity(b.Velocity.Y, policy)
		b.Acceleration.Y = 0
		b.Location.Y = Clamp(b.Location.Y, 0, size.Y)
	}
}

func edgeVelocity(v float64, policy BoundaryPolicy) float64 {
	if policy == BoundaryBounce {
		return -v
	}
	return 0
}

// Collides reports whether the two bodies touch or overlap
func (b Body) Collides(other Body) bool {
	return CheckCollision(b.Location, b.Radius, other.Location, other.Radius)
}

// FieldFrom returns the pull b feels toward other. Only other's Field counts,
// so a body with zero field is pulled but never pulls.
func (b Body) FieldFrom(other Body) cp.Vector {
	d := b.Location.Distance(other.Location)
	if d < other.Radius || d < minFieldDistance {
		return cp.Vector{}
	}
	magnitude := other.Field / (d * d)
	return other.Location.Sub(b.Location).Mult(magnitude / d)
}

// Inside reports whether the body's center is strictly within the domain
func (b Body) Inside(size cp.Vector) bool {
	return b.Location.X > 0 && b.Location.Y > 0 &&
		b.Location.X < size.X && b.Location.Y < size.Y
}
