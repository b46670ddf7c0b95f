package host

import (
	"strconv"
	"strings"

	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

// ParseUnitType maps a sprite key to its unit class. Keys are case
// sensitive and match UnitType.SpriteKey.
func ParseUnitType(key string) (types.UnitType, error) {
	for _, t := range types.UnitTypes {
		if t.SpriteKey() == key {
			return t, nil
		}
	}
	return 0, apperrors.WithMetadata(apperrors.CodeUnknownUnitType, "unknown unit type", map[string]string{
		"type": key,
	})
}

// ParsePlayer maps a numeric player code to a Player.
func ParsePlayer(code int) (types.Player, error) {
	switch code {
	case 1:
		return types.Player1, nil
	case 2:
		return types.Player2, nil
	default:
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidPlayer, "invalid player (must be 1 or 2)", map[string]string{
			"player": strconv.Itoa(code),
		})
	}
}

// PlayerCode is the inverse of ParsePlayer.
func PlayerCode(p types.Player) int {
	return int(p)
}

// FacingFromIndex maps 0-5 to a Facing.
func FacingFromIndex(index int) (hex.Facing, error) {
	f, ok := hex.FacingFromIndex(index)
	if !ok {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidFacing, "invalid facing (must be 0-5)", map[string]string{
			"facing": strconv.Itoa(index),
		})
	}
	return f, nil
}

var facingWords = map[string]hex.Facing{
	"e": hex.East, "east": hex.East,
	"ne": hex.Northeast, "northeast": hex.Northeast,
	"nw": hex.Northwest, "northwest": hex.Northwest,
	"w": hex.West, "west": hex.West,
	"sw": hex.Southwest, "southwest": hex.Southwest,
	"se": hex.Southeast, "southeast": hex.Southeast,
}

// ParseFacing accepts an index ("0"-"5") or a direction word ("ne",
// "southwest").
func ParseFacing(s string) (hex.Facing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := facingWords[s]; ok {
		return f, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidFacing, "invalid facing", map[string]string{
			"facing": s,
		})
	}
	return FacingFromIndex(n)
}

// PhaseName returns the lower-case phase name used by hosts.
func PhaseName(p types.Phase) string {
	return strings.ToLower(p.String())
}
