package main

import "fmt"

// EntityKind tags the closed set of simulated entities
type EntityKind uint8

const (
	KindPlanet EntityKind = iota
	KindShip
	KindBullet
)

func (k EntityKind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	}
	return fmt.Sprintf("EntityKind(%d)", uint8(k))
}

// Planet is an ownerless body. It only moves if given an initial velocity
// or if other planets pull on it.
type Planet struct {
	Body Body
}

// NewPlanet wraps a body as a planet
func NewPlanet(body Body) Planet {
	return Planet{Body: body}
}

// ToState converts to protocol state
func (p *Planet) ToState() EntityState {
	return EntityState{
		Kind: KindPlanet,
		X:    p.Body.Location.X,
		Y:    p.Body.Location.Y,
		R:    p.Body.Radius,
	}
}
