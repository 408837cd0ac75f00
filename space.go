package main

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/jakecoffman/cp"
)

// gridDivisions is the minimum number of broad-phase cells along the longer axis
const gridDivisions = 16

// Space is the authoritative world: domain bounds and every simulated entity.
// It is not safe for concurrent use; see World.
type Space struct {
	size     cp.Vector
	ship     ShipConfig
	bullet   BulletConfig
	boundary BoundaryPolicy
	rng      *rand.Rand
	tick     uint64

	planets []Planet
	ships   []*Ship
	bullets []Bullet

	grid *SpatialGrid
	hits []int // reusable broad-phase buffer
}

// NewSpace creates an empty world of the given size
func NewSpace(size cp.Vector, ship ShipConfig, bullet BulletConfig) *Space {
	cell := math.Max(size.X, size.Y) / gridDivisions
	if reach := 2 * (ship.Radius + bullet.Radius); reach > cell {
		cell = reach
	}
	seed := uint64(time.Now().UnixNano())
	return &Space{
		size:   size,
		ship:   ship,
		bullet: bullet,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		grid:   NewSpatialGrid(size.X, size.Y, cell),
	}
}

// SetBoundary selects the edge policy applied to every entity
func (s *Space) SetBoundary(p BoundaryPolicy) {
	s.boundary = p
}

// SetRand replaces the source used for respawn locations
func (s *Space) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// Size returns the domain extent
func (s *Space) Size() cp.Vector {
	return s.size
}

// Tick returns the number of completed updates
func (s *Space) Tick() uint64 {
	return s.tick
}

// ShipCount returns the number of live ships
func (s *Space) ShipCount() int {
	return len(s.ships)
}

// Ship returns the live ship with the given id, or nil
func (s *Space) Ship(id uint8) *Ship {
	if i := s.shipIndex(id); i >= 0 {
		return s.ships[i]
	}
	return nil
}

// Update runs one simulation step: planets, then bullets, then ships
func (s *Space) Update(dt float64) {
	s.updatePlanets(dt)
	s.updateBullets(dt)
	s.updateShips(dt)
	s.tick++
}

func (s *Space) updatePlanets(dt float64) {
	fields := make([]cp.Vector, len(s.planets))
	for i := range s.planets {
		fields[i] = SumFields(&s.planets[i].Body, s.planets)
	}
	for i := range s.planets {
		s.planets[i].Body.Integrate(dt, fields[i], s.size, s.boundary)
	}
}

func (s *Space) updateBullets(dt float64) {
	for i := range s.bullets {
		b := &s.bullets[i].Body
		b.Integrate(dt, SumFields(b, s.planets), s.size, s.boundary)
	}
	s.bullets = slices.DeleteFunc(s.bullets, func(b Bullet) bool {
		return !b.Body.Inside(s.size) || s.hitsPlanet(b.Body)
	})
}

func (s *Space) updateShips(dt float64) {
	s.grid.Clear()
	for i := range s.bullets {
		s.grid.InsertCircle(s.bullets[i].Body.Location, s.bullets[i].Body.Radius, i)
	}

	var killers []uint8
	dead := make(map[uint8]bool)
	for _, ship := range s.ships {
		ship.Body.Integrate(dt, ship.Force(SumFields(&ship.Body, s.planets)), s.size, s.boundary)
		if s.hitsPlanet(ship.Body) {
			dead[ship.ID] = true
		}

		s.hits = s.grid.QueryBuf(ship.Body.Location, ship.Body.Radius, s.hits[:0])
		slices.Sort(s.hits)
		s.hits = slices.Compact(s.hits)
		for _, i := range s.hits {
			bullet := &s.bullets[i]
			if bullet.OwnerID == ship.ID || !bullet.Body.Collides(ship.Body) {
				continue
			}
			dead[ship.ID] = true
			killers = append(killers, bullet.OwnerID)
		}
	}

	for _, id := range killers {
		if killer := s.Ship(id); killer != nil {
			killer.Kill()
		}
	}
	for _, ship := range s.ships {
		if dead[ship.ID] {
			ship.Respawn(s.randomLocation())
		}
	}
}

func (s *Space) hitsPlanet(b Body) bool {
	for i := range s.planets {
		if b.Collides(s.planets[i].Body) {
			return true
		}
	}
	return false
}

// AddPlanet adds a planet. Any planet is accepted, even one reaching past the edge.
func (s *Space) AddPlanet(body Body) {
	s.planets = append(s.planets, NewPlanet(body))
}

// AddShip spawns a ship with the next id after the largest live one.
// It fails only when the id space is exhausted.
func (s *Space) AddShip(location cp.Vector) (uint8, bool) {
	next := 1
	for _, ship := range s.ships {
		if int(ship.ID) >= next {
			next = int(ship.ID) + 1
		}
	}
	if next > math.MaxUint8 {
		return 0, false
	}
	id := uint8(next)
	s.ships = append(s.ships, NewShip(id, location, s.ship))
	return id, true
}

// AddShipWithID spawns a ship for a known player. It is a no-op if the id is live.
func (s *Space) AddShipWithID(id uint8, location cp.Vector) bool {
	if s.shipIndex(id) >= 0 {
		return false
	}
	s.ships = append(s.ships, NewShip(id, location, s.ship))
	return true
}

// RemoveShip removes a ship and its bullets in flight, so a later ship with
// the same id neither owns them nor is immune to them. Removing an absent
// ship is a no-op.
func (s *Space) RemoveShip(id uint8) bool {
	i := s.shipIndex(id)
	if i < 0 {
		return false
	}
	s.ships = slices.Delete(s.ships, i, i+1)
	s.bullets = slices.DeleteFunc(s.bullets, func(b Bullet) bool { return b.OwnerID == id })
	return true
}

// MoveShip sets or clears the steering direction of a ship
func (s *Space) MoveShip(id uint8, direction *float64) bool {
	ship := s.Ship(id)
	if ship == nil {
		return false
	}
	ship.Steer(direction)
	return true
}

// Shoot fires a bullet from a ship
func (s *Space) Shoot(id uint8, direction float64) bool {
	ship := s.Ship(id)
	if ship == nil {
		return false
	}
	s.bullets = append(s.bullets, ship.Shoot(direction, s.bullet))
	return true
}

func (s *Space) shipIndex(id uint8) int {
	return slices.IndexFunc(s.ships, func(ship *Ship) bool { return ship.ID == id })
}

// randomLocation draws a respawn location
func (s *Space) randomLocation() cp.Vector {
	return RandomLocation(s.rng, s.size)
}
