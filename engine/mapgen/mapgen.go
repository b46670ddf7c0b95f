// Package mapgen paints procedural terrain onto a board.Map. Elevation and
// vegetation come from layered simplex noise; ruins are scattered with a
// seeded RNG. The same seed always yields the same battlefield.
package mapgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/nathoo/titanhunt/engine/board"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

// Config holds generation thresholds. Noise values are in [0, 1].
type Config struct {
	Seed        int64
	Frequency   float64 // base noise frequency per hex
	WaterLevel  float64 // elevation below this is Water
	RoughLevel  float64 // elevation above this is Rough
	PeakLevel   float64 // elevation above this is Impassable
	WoodsLevel  float64 // vegetation above this is Woods
	RuinsChance int     // percent of open ground that becomes Ruins or Rough rubble
	MaxHeight   int     // elevation levels are 0..MaxHeight
}

// DefaultConfig returns thresholds that give a mostly open field with a
// few obstacles.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:        seed,
		Frequency:   0.18,
		WaterLevel:  0.24,
		RoughLevel:  0.68,
		PeakLevel:   0.80,
		WoodsLevel:  0.64,
		RuinsChance: 6,
		MaxHeight:   3,
	}
}

// Result summarizes a generation run.
type Result struct {
	Counts   map[types.TerrainType]int
	Seed     int64
	RNGDraws int64
}

// Generate overwrites the terrain and elevation of every tile in m.
func Generate(m *board.Map, cfg Config) (Result, error) {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	vegNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	rng := NewRNG(cfg.Seed)

	for _, c := range m.Coords() {
		x, y := c.ToPixel(1)
		elev := octaveNoise(elevNoise, x, y, 4, cfg.Frequency, 0.5)
		veg := octaveNoise(vegNoise, x, y, 3, cfg.Frequency*0.8, 0.5)

		terrain := deriveTerrain(elev, veg, cfg)
		if terrain == types.Clear && cfg.RuinsChance > 0 && rng.Roll(100) <= cfg.RuinsChance {
			terrain = []types.TerrainType{types.Ruins, types.Rough}[rng.WeightedSelect([]int{3, 1})]
		}

		height := 0
		if terrain != types.Water {
			height = int(elev * float64(cfg.MaxHeight+1))
			if height > cfg.MaxHeight {
				height = cfg.MaxHeight
			}
		}

		if err := m.SetTerrain(c, terrain); err != nil {
			return Result{}, err
		}
		if err := m.SetElevation(c, height); err != nil {
			return Result{}, err
		}
	}

	return Result{Counts: m.CountTerrain(), Seed: rng.Seed(), RNGDraws: rng.Position()}, nil
}

// ClearZone resets every hex within radius of center to Clear so units can
// deploy there.
func ClearZone(m *board.Map, center hex.Coord, radius int) int {
	n := 0
	for _, c := range m.Coords() {
		if hex.Distance(center, c) > radius {
			continue
		}
		if m.TerrainAt(c) != types.Clear {
			n++
		}
		_ = m.SetTerrain(c, types.Clear)
	}
	return n
}

func deriveTerrain(elev, veg float64, cfg Config) types.TerrainType {
	switch {
	case elev > cfg.PeakLevel:
		return types.Impassable
	case elev > cfg.RoughLevel:
		return types.Rough
	case elev < cfg.WaterLevel:
		return types.Water
	case veg > cfg.WoodsLevel:
		return types.Woods
	default:
		return types.Clear
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
