// Titanhunt is a hex-grid wargame engine with a terminal front end.
// Usage: titanhunt [--version] [--plain] [--script <file>] [--trace] [scenario]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/titanhunt/cli"
	"github.com/nathoo/titanhunt/config"
	"github.com/nathoo/titanhunt/engine"
	"github.com/nathoo/titanhunt/engine/board"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/mapgen"
	"github.com/nathoo/titanhunt/host"
	"github.com/nathoo/titanhunt/loader"
	"github.com/nathoo/titanhunt/tui"
	"github.com/nathoo/titanhunt/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: titanhunt [--version] [--plain] [--script <file>] [--trace] [scenario]"

func main() {
	plain := false
	trace := false
	var scenarioPath string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("titanhunt %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if scenarioPath == "" {
				scenarioPath = args[i]
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := engine.Options{VerifyPaths: cfg.VerifyPaths}
	var (
		eng   *engine.Engine
		title string
		intro string
	)
	if scenarioPath == "" {
		eng, err = defaultSkirmish(cfg, opts)
		title = "Skirmish"
		intro = "A Reaver and a Shadowsword face a Warlord and its escort."
	} else {
		var sc *loader.Scenario
		sc, err = loader.Load(scenarioPath)
		if err == nil {
			eng, err = loader.Build(sc, opts)
			title, intro = sc.Title, sc.Description
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}

	h := host.Wrap(eng)
	h.HexSize = cfg.HexSize
	h.AutoVictory = true

	// Script mode: read orders from the file and echo them.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(h, title, intro)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(h, title, intro)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(h, title, intro); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultSkirmish builds the game used when no scenario is given: two
// units per side in opposite corners of a cfg-sized map. A nonzero seed
// generates terrain and clears the deployment hexes.
func defaultSkirmish(cfg config.Config, opts engine.Options) (*engine.Engine, error) {
	w, h := cfg.MapWidth, cfg.MapHeight
	if w < 4 || h < 5 {
		return nil, fmt.Errorf("default skirmish needs at least a 4x5 map, got %dx%d", w, h)
	}

	deploy := []struct {
		id     int
		typ    types.UnitType
		owner  types.Player
		col    int
		row    int
		facing hex.Facing
	}{
		{1, types.ReaverTitan, types.Player1, 1, 1, hex.East},
		{2, types.Shadowsword, types.Player1, 1, 3, hex.East},
		{3, types.WarlordTitan, types.Player2, w - 2, h - 2, hex.West},
		{4, types.Shadowsword2, types.Player2, w - 2, h - 4, hex.West},
	}

	m := board.New(w, h)
	if cfg.Seed != 0 {
		gen, err := mapgen.Generate(m, mapgen.DefaultConfig(cfg.Seed))
		if err != nil {
			return nil, err
		}
		slog.Debug("terrain generated", "seed", gen.Seed, "rng_draws", gen.RNGDraws)
		for _, d := range deploy {
			mapgen.ClearZone(m, offsetToAxial(d.col, d.row), 1)
		}
	}

	e := engine.New(m, opts)
	for _, d := range deploy {
		if _, err := e.AddUnit(d.id, d.typ, d.owner, offsetToAxial(d.col, d.row), d.facing); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// offsetToAxial converts a drawn column and row to the axial coordinate
// used by rectangular maps.
func offsetToAxial(col, row int) hex.Coord {
	return hex.New(col-row/2, row)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
