package main

import "fmt"

// FallbackPlayerID receives the steering clear caused by a malformed command
const FallbackPlayerID uint8 = 1

// CommandOp selects what a command does to the world
type CommandOp uint8

const (
	OpInput CommandOp = iota // client frame: steer and maybe fire
	OpSpawn                  // posted by the hub when a player connects
	OpRemove                 // posted by the hub when a player disconnects
)

func (op CommandOp) String() string {
	switch op {
	case OpInput:
		return "input"
	case OpSpawn:
		return "spawn"
	case OpRemove:
		return "remove"
	}
	return fmt.Sprintf("CommandOp(%d)", uint8(op))
}

// Command is an opaque client frame or a synthetic lifecycle event, tagged
// with the acting player. Tags come from the hub, never from the client.
type Command struct {
	PlayerID uint8
	Op       CommandOp
	Payload  []byte
}

// SpawnCommand asks for a ship for id
func SpawnCommand(id uint8) Command {
	return Command{PlayerID: id, Op: OpSpawn}
}

// RemoveCommand asks for id's ship to be removed
func RemoveCommand(id uint8) Command {
	return Command{PlayerID: id, Op: OpRemove}
}

// InputCommand wraps a raw client frame
func InputCommand(id uint8, frame []byte) Command {
	return Command{PlayerID: id, Op: OpInput, Payload: frame}
}

// ApplyCommand mutates the world. It never fails: anything it cannot
// understand clears the fallback player's steering.
func ApplyCommand(s *Space, cmd Command) {
	switch cmd.Op {
	case OpSpawn:
		s.AddShipWithID(cmd.PlayerID, s.randomLocation())
	case OpRemove:
		s.RemoveShip(cmd.PlayerID)
	case OpInput:
		frame, err := DecodeCommandFrame(cmd.Payload)
		if err != nil {
			s.MoveShip(FallbackPlayerID, nil)
			return
		}
		s.MoveShip(cmd.PlayerID, frame.Steer)
		if frame.Fire != nil {
			s.Shoot(cmd.PlayerID, *frame.Fire)
		}
	default:
		s.MoveShip(FallbackPlayerID, nil)
	}
}
