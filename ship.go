package main

import "github.com/jakecoffman/cp"

// ShipConfig holds the parameters shared by every spawned ship
type ShipConfig struct {
	Force  float64 `json:"force" msgpack:"f"` // thrust while steering
	Radius float64 `json:"radius" msgpack:"r"`
	Mass   float64 `json:"mass" msgpack:"m"`
	Field  float64 `json:"field" msgpack:"g"`
}

// Score counts a pilot's kills and deaths
type Score struct {
	Kills  uint32
	Deaths uint32
}

// Ship is a player-controlled body
type Ship struct {
	ID        uint8
	Body      Body
	Direction *float64 // steering angle in radians, nil = no thrust
	Thrust    float64
	Score     Score
}

// NewShip creates a ship at rest
func NewShip(id uint8, location cp.Vector, cfg ShipConfig) *Ship {
	return &Ship{
		ID:     id,
		Body:   NewBody(location, cfg.Radius, cfg.Mass, cfg.Field, cp.Vector{}),
		Thrust: cfg.Force,
	}
}

// Force adds the ship's own thrust to the external field
func (s *Ship) Force(totalField cp.Vector) cp.Vector {
	if s.Direction == nil {
		return totalField
	}
	return totalField.Add(Direction(*s.Direction).Mult(s.Thrust))
}

// Steer sets or clears the thrust direction
func (s *Ship) Steer(direction *float64) {
	if direction == nil {
		s.Direction = nil
		return
	}
	d := *direction
	s.Direction = &d
}

// Shoot creates a bullet at the ship's location heading in direction
func (s *Ship) Shoot(direction float64, cfg BulletConfig) Bullet {
	return Bullet{
		OwnerID: s.ID,
		Body: NewBody(
			s.Body.Location,
			cfg.Radius,
			cfg.Mass,
			cfg.Field,
			Direction(direction).Mult(cfg.Speed),
		),
	}
}

// Respawn moves the ship to location at rest and records a death
func (s *Ship) Respawn(location cp.Vector) {
	s.Body.Location = location
	s.Body.Velocity = cp.Vector{}
	s.Body.Acceleration = cp.Vector{}
	s.Score.Deaths++
}

// Kill credits the ship with a kill
func (s *Ship) Kill() {
	s.Score.Kills++
}

// ToState converts to protocol state
func (s *Ship) ToState() EntityState {
	return EntityState{
		Kind:   KindShip,
		ID:     s.ID,
		X:      s.Body.Location.X,
		Y:      s.Body.Location.Y,
		R:      s.Body.Radius,
		Kills:  s.Score.Kills,
		Deaths: s.Score.Deaths,
	}
}
