package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// Client -> Server command frame, fixed size, big-endian:
//
//	[0]     steer flag (0 = clear steering)
//	[1:9]   steer angle, IEEE-754 float64
//	[9]     fire flag (0 = no shot)
//	[10:18] fire angle, IEEE-754 float64
//
// The first 9 bytes alone are the plain steering frame.
const (
	SteerFrameSize   = 9
	CommandFrameSize = SteerFrameSize * 2
)

// Server -> Client framing: 4-byte big-endian length, then a msgpack payload
const (
	LengthPrefixSize = 4
	MaxStateSize     = 1 << 24
)

// Notice messages sent in place of a state payload
const (
	NoticeServerFull   = "server full"
	NoticeRateLimited  = "rate limited"
	NoticeShuttingDown = "shutting down"
)

// EntityState is one entity in a snapshot. ID is the ship id for ships and
// the owner id for bullets; planets have no id.
type EntityState struct {
	Kind   EntityKind `msgpack:"k"`
	ID     uint8      `msgpack:"id"`
	X      float64    `msgpack:"x"`
	Y      float64    `msgpack:"y"`
	R      float64    `msgpack:"r"`
	Kills  uint32     `msgpack:"kl,omitempty"`
	Deaths uint32     `msgpack:"dt,omitempty"`
}

// StateMsg is the full world snapshot broadcast to every client
type StateMsg struct {
	Tick    uint64        `msgpack:"tick"`
	Width   float64       `msgpack:"w"`
	Height  float64       `msgpack:"h"`
	Ship    ShipConfig    `msgpack:"sc"`
	Bullet  BulletConfig  `msgpack:"bc"`
	Planets []EntityState `msgpack:"p"`
	Ships   []EntityState `msgpack:"s"`
	Bullets []EntityState `msgpack:"b"`
}

// NoticeMsg tells a client why it was refused
type NoticeMsg struct {
	Error string `msgpack:"error"`
}

// CommandFrame is a decoded client frame
type CommandFrame struct {
	Steer *float64
	Fire  *float64
}

// EncodeCommandFrame builds the wire form of a client frame
func EncodeCommandFrame(steer, fire *float64) []byte {
	buf := make([]byte, CommandFrameSize)
	putAngle(buf[:SteerFrameSize], steer)
	putAngle(buf[SteerFrameSize:], fire)
	return buf
}

func putAngle(b []byte, angle *float64) {
	if angle == nil {
		return
	}
	b[0] = 1
	binary.BigEndian.PutUint64(b[1:], math.Float64bits(*angle))
}

// DecodeCommandFrame parses a client frame. A 9-byte frame carries steering only.
func DecodeCommandFrame(b []byte) (CommandFrame, error) {
	var f CommandFrame
	switch len(b) {
	case SteerFrameSize, CommandFrameSize:
	default:
		return f, fmt.Errorf("command frame of %d bytes", len(b))
	}
	steer, err := readAngle(b[:SteerFrameSize])
	if err != nil {
		return f, fmt.Errorf("steer: %w", err)
	}
	f.Steer = steer
	if len(b) == CommandFrameSize {
		fire, err := readAngle(b[SteerFrameSize:])
		if err != nil {
			return f, fmt.Errorf("fire: %w", err)
		}
		f.Fire = fire
	}
	return f, nil
}

func readAngle(b []byte) (*float64, error) {
	if b[0] == 0 {
		return nil, nil
	}
	angle := math.Float64frombits(binary.BigEndian.Uint64(b[1:SteerFrameSize]))
	if !finite(angle) {
		return nil, fmt.Errorf("non-finite angle")
	}
	return &angle, nil
}

// Snapshot serializes the whole world deterministically
func (s *Space) Snapshot() ([]byte, error) {
	state := StateMsg{
		Tick:    s.tick,
		Width:   s.size.X,
		Height:  s.size.Y,
		Ship:    s.ship,
		Bullet:  s.bullet,
		Planets: make([]EntityState, 0, len(s.planets)),
		Ships:   make([]EntityState, 0, len(s.ships)),
		Bullets: make([]EntityState, 0, len(s.bullets)),
	}
	for i := range s.planets {
		state.Planets = append(state.Planets, s.planets[i].ToState())
	}
	for _, ship := range s.ships {
		state.Ships = append(state.Ships, ship.ToState())
	}
	for i := range s.bullets {
		state.Bullets = append(state.Bullets, s.bullets[i].ToState())
	}
	return msgpack.Marshal(&state)
}

// DecodeSnapshot parses a snapshot payload
func DecodeSnapshot(b []byte) (StateMsg, error) {
	var state StateMsg
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(&state); err != nil {
		return StateMsg{}, err
	}
	return state, nil
}

// EncodeNotice serializes a refusal notice
func EncodeNotice(msg string) []byte {
	b, err := msgpack.Marshal(&NoticeMsg{Error: msg})
	if err != nil {
		return []byte(msg)
	}
	return b
}
