package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jakecoffman/cp"
)

var ErrMapInvalid = errors.New("invalid map")

type planetFile struct {
	Location [2]float64 `json:"location"`
	Radius   float64    `json:"radius"`
	Mass     float64    `json:"mass"`
	Field    float64    `json:"field"`
	Velocity [2]float64 `json:"velocity"`
}

type mapFile struct {
	Size     [2]float64   `json:"size"`
	Boundary string       `json:"boundary"`
	Ship     ShipConfig   `json:"ship"`
	Bullet   BulletConfig `json:"bullet"`
	Planets  []planetFile `json:"planets"`
}

// LoadMap reads a map file and builds the initial world
func LoadMap(path string) (*Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	return ReadMap(f)
}

// ReadMap decodes a map from r
func ReadMap(r io.Reader) (*Space, error) {
	var m mapFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapInvalid, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapInvalid, err)
	}
	policy, err := ParseBoundaryPolicy(m.Boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapInvalid, err)
	}

	space := NewSpace(cp.Vector{X: m.Size[0], Y: m.Size[1]}, m.Ship, m.Bullet)
	space.SetBoundary(policy)
	for _, p := range m.Planets {
		space.AddPlanet(NewBody(
			cp.Vector{X: p.Location[0], Y: p.Location[1]},
			p.Radius, p.Mass, p.Field,
			cp.Vector{X: p.Velocity[0], Y: p.Velocity[1]},
		))
	}
	return space, nil
}

func (m *mapFile) validate() error {
	if !(m.Size[0] > 0) || !(m.Size[1] > 0) || math.IsInf(m.Size[0], 0) || math.IsInf(m.Size[1], 0) {
		return fmt.Errorf("size must be positive, got %v", m.Size)
	}
	if m.Ship.Radius < 0 || m.Bullet.Radius < 0 {
		return errors.New("radius must not be negative")
	}
	for i, p := range m.Planets {
		if p.Radius < 0 {
			return fmt.Errorf("planet %d: radius must not be negative", i)
		}
	}
	return nil
}
