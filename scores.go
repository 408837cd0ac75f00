package main

import (
	"fmt"
	"io"
	"sort"
)

// ScoreEntry is one row of the scoreboard
type ScoreEntry struct {
	ID     uint8  `json:"id"`
	Kills  uint32 `json:"kills"`
	Deaths uint32 `json:"deaths"`
}

// Scoreboard ranks the ships of a snapshot by kills, then fewest deaths, then id
func Scoreboard(state StateMsg) []ScoreEntry {
	rows := make([]ScoreEntry, 0, len(state.Ships))
	for _, s := range state.Ships {
		rows = append(rows, ScoreEntry{ID: s.ID, Kills: s.Kills, Deaths: s.Deaths})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Kills != rows[j].Kills {
			return rows[i].Kills > rows[j].Kills
		}
		if rows[i].Deaths != rows[j].Deaths {
			return rows[i].Deaths < rows[j].Deaths
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// WriteScoreboard renders the scoreboard as a plain text table
func WriteScoreboard(w io.Writer, state StateMsg) error {
	if _, err := fmt.Fprintf(w, "tick %d  ships %d  bullets %d\r\n", state.Tick, len(state.Ships), len(state.Bullets)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-6s %6s %6s\r\n", "SHIP", "KILLS", "DEATHS"); err != nil {
		return err
	}
	for _, row := range Scoreboard(state) {
		if _, err := fmt.Fprintf(w, "%-6d %6d %6d\r\n", row.ID, row.Kills, row.Deaths); err != nil {
			return err
		}
	}
	return nil
}
