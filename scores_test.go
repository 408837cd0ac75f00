package main

import (
	"strings"
	"testing"
)

func TestScoreboardOrder(t *testing.T) {
	state := StateMsg{Ships: []EntityState{
		{Kind: KindShip, ID: 1, Kills: 1, Deaths: 3},
		{Kind: KindShip, ID: 2, Kills: 4, Deaths: 0},
		{Kind: KindShip, ID: 3, Kills: 1, Deaths: 1},
		{Kind: KindShip, ID: 4, Kills: 1, Deaths: 1},
	}}
	rows := Scoreboard(state)
	want := []uint8{2, 3, 4, 1}
	for i, id := range want {
		if rows[i].ID != id {
			t.Errorf("expected ship %d at rank %d, got %d", id, i, rows[i].ID)
		}
	}
}

func TestWriteScoreboard(t *testing.T) {
	var sb strings.Builder
	state := StateMsg{Tick: 42, Ships: []EntityState{{Kind: KindShip, ID: 7, Kills: 2, Deaths: 1}}}
	if err := WriteScoreboard(&sb, state); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "tick 42") {
		t.Errorf("expected tick in output, got %q", out)
	}
	if !strings.Contains(out, "7") || !strings.Contains(out, "KILLS") {
		t.Errorf("expected ship row and header, got %q", out)
	}
}
