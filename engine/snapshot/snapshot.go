// Package snapshot renders a GameState as canonical JSON. Two states with
// the same snapshot bytes are indistinguishable to the rules. The format is
// for inspection and comparison; nothing reads it back into a game.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// Snapshot is the JSON-serializable view of a game.
type Snapshot struct {
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Tiles        []TileEntry   `json:"tiles"`
	Units        []UnitEntry   `json:"units"`
	Turn         int           `json:"turn"`
	Phase        string        `json:"phase"`
	ActivePlayer int           `json:"active_player"`
	Selected     *int          `json:"selected,omitempty"`
	Events       []EventRecord `json:"events"`
	GameOver     bool          `json:"game_over"`
	Winner       int           `json:"winner,omitempty"`
}

// TileEntry is one map hex. Only tiles that differ from Clear at
// elevation 0 are listed.
type TileEntry struct {
	Q         int    `json:"q"`
	R         int    `json:"r"`
	Terrain   string `json:"terrain"`
	Elevation int    `json:"elevation,omitempty"`
}

// UnitEntry is one unit in insertion order.
type UnitEntry struct {
	ID                int    `json:"id"`
	Type              string `json:"type"`
	Owner             int    `json:"owner"`
	Q                 int    `json:"q"`
	R                 int    `json:"r"`
	Facing            int    `json:"facing"`
	Armor             int    `json:"armor"`
	Structure         int    `json:"structure"`
	VoidShields       int    `json:"void_shields"`
	MovementRemaining int    `json:"movement_remaining"`
	HasMoved          bool   `json:"has_moved"`
	HasAttacked       bool   `json:"has_attacked"`
}

// EventRecord is one logged event.
type EventRecord struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Take captures s.
func Take(s *state.GameState) Snapshot {
	w, h := s.Map.Size()
	snap := Snapshot{
		Width:        w,
		Height:       h,
		Tiles:        []TileEntry{},
		Units:        make([]UnitEntry, 0, len(s.Units)),
		Turn:         s.Turn,
		Phase:        s.Phase.String(),
		ActivePlayer: int(s.ActivePlayer),
		Events:       make([]EventRecord, 0, len(s.Events)),
		GameOver:     s.GameOver,
		Winner:       int(s.Winner),
	}
	if s.Selected != nil {
		id := *s.Selected
		snap.Selected = &id
	}

	for _, c := range s.Map.Coords() {
		tile, _ := s.Map.Tile(c)
		if tile.Terrain == types.Clear && tile.Elevation == 0 {
			continue
		}
		snap.Tiles = append(snap.Tiles, TileEntry{
			Q:         c.Q,
			R:         c.R,
			Terrain:   tile.Terrain.String(),
			Elevation: tile.Elevation,
		})
	}

	for _, u := range s.Units {
		snap.Units = append(snap.Units, UnitEntry{
			ID:                u.ID,
			Type:              u.Type.SpriteKey(),
			Owner:             int(u.Owner),
			Q:                 u.Position.Q,
			R:                 u.Position.R,
			Facing:            u.Facing.Index(),
			Armor:             u.Armor,
			Structure:         u.Structure,
			VoidShields:       u.VoidShields,
			MovementRemaining: u.MovementRemaining,
			HasMoved:          u.HasMoved,
			HasAttacked:       u.HasAttacked,
		})
	}

	for _, e := range s.Events {
		snap.Events = append(snap.Events, EventRecord{
			Type:    string(e.Type()),
			Summary: fmt.Sprint(e),
		})
	}
	return snap
}

// Encode serializes s to indented JSON bytes.
func Encode(s *state.GameState) ([]byte, error) {
	return json.MarshalIndent(Take(s), "", "  ")
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Tiles == nil {
		snap.Tiles = []TileEntry{}
	}
	if snap.Units == nil {
		snap.Units = []UnitEntry{}
	}
	if snap.Events == nil {
		snap.Events = []EventRecord{}
	}
	return &snap, nil
}

// Equal reports whether a and b encode to the same snapshot.
func Equal(a, b *state.GameState) bool {
	ea, err := Encode(a)
	if err != nil {
		return false
	}
	eb, err := Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
