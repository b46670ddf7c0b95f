package host

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/nathoo/titanhunt/engine/events"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/movement"
	"github.com/nathoo/titanhunt/parser"
	"github.com/nathoo/titanhunt/types"
)

// Result is the outcome of one typed command.
type Result struct {
	Output []string
	Events []EventView
	// Overlay is set by reach and path queries so a board view can
	// highlight the answer.
	Overlay *Overlay
}

func (r *Result) say(format string, args ...any) {
	r.Output = append(r.Output, fmt.Sprintf(format, args...))
}

// Exec parses and runs one command line. Rejections are reported as
// output, never as a Go error.
func (h *Host) Exec(input string) Result {
	var res Result

	// 1. Parse input.
	intent, err := parser.Parse(input)
	if err != nil {
		res.say("%v", err)
		return res
	}

	// 2. Empty input.
	if intent.Verb == "" {
		res.say("What are your orders?")
		return res
	}

	// 3. Dispatch.
	switch intent.Verb {
	case "select":
		h.execSelect(&res, intent)
	case "deselect":
		_ = h.SelectUnit(nil)
		res.say("Selection cleared.")
	case "reach":
		h.execReach(&res, intent)
	case "path":
		h.execPath(&res, intent)
	case "move":
		h.execMove(&res, intent)
	case "endphase":
		h.execCommand(&res, types.EndPhase{})
	case "endturn":
		h.execCommand(&res, types.EndTurn{})
	case "start":
		if h.StartGame() {
			res.say("Deployment complete. %s moves first.", h.Engine.State.ActivePlayer)
		} else {
			res.say("The game has already started.")
		}
	case "units":
		h.execUnits(&res)
	case "info":
		h.execInfo(&res, intent)
	case "victory":
		h.execVictory(&res)
	case "objectives":
		h.execObjectives(&res)
	case "events":
		h.execEvents(&res)
	case "terrain":
		h.execTerrain(&res, intent)
	case "pixel":
		if !intent.HasTarget {
			res.say("pixel: give a hex as q r.")
			return res
		}
		p := h.HexToPixel(intent.Target.Q, intent.Target.R, h.HexSize)
		res.say("%v -> (%.2f, %.2f) at size %g", intent.Target, p.X, p.Y, h.HexSize)
		corners := make([]string, 0, 6)
		for _, c := range h.HexCorners(intent.Target.Q, intent.Target.R, h.HexSize) {
			corners = append(corners, fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y))
		}
		res.say("corners: %s", strings.Join(corners, " "))
	case "hex":
		c := h.PixelToHex(intent.X, intent.Y, h.HexSize)
		res.say("(%.2f, %.2f) -> %v at size %g", intent.X, intent.Y, c.Coord(), h.HexSize)
	case "map":
		res.Output = append(res.Output, RenderBoard(h.Engine.State, Overlay{})...)
	default:
		res.say("I don't know how to %q.", intent.Verb)
	}
	return res
}

// unitFor picks the unit an intent refers to: explicit id, name, or the
// current selection.
func (h *Host) unitFor(intent parser.Intent) (int, error) {
	switch {
	case intent.HasUnit:
		return intent.Unit, nil
	case intent.UnitName != "":
		return ResolveUnit(h.Engine.State, intent.UnitName)
	}
	if id, ok := h.SelectedUnit(); ok {
		return id, nil
	}
	return 0, fmt.Errorf("no unit selected")
}

func (h *Host) execSelect(res *Result, intent parser.Intent) {
	id, err := h.unitFor(intent)
	if err != nil {
		res.say("%v", err)
		return
	}
	if err := h.SelectUnit(&id); err != nil {
		res.say("%v", err)
		return
	}
	u, _ := h.Engine.State.Unit(id)
	res.say("Selected unit %d: %s (%s) at %v.", u.ID, u.Type.DisplayName(), u.Owner, u.Position)
}

func (h *Host) execReach(res *Result, intent parser.Intent) {
	id, err := h.unitFor(intent)
	if err != nil {
		res.say("%v", err)
		return
	}
	reach, err := h.Engine.Reachable(id)
	if err != nil {
		res.say("%v", err)
		return
	}
	res.Overlay = &Overlay{Reachable: reach}
	res.say("Unit %d can reach %s.", id, english.Plural(len(reach), "hex", "hexes"))

	byRemaining := map[int][]hex.Coord{}
	for c, rem := range reach {
		byRemaining[rem] = append(byRemaining[rem], c)
	}
	var levels []int
	for rem := range byRemaining {
		levels = append(levels, rem)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))
	for _, rem := range levels {
		coords := byRemaining[rem]
		sort.Slice(coords, func(i, j int) bool {
			if coords[i].R != coords[j].R {
				return coords[i].R < coords[j].R
			}
			return coords[i].Q < coords[j].Q
		})
		res.say("  %d MP left: %v", rem, coords)
	}
}

func (h *Host) execPath(res *Result, intent parser.Intent) {
	if !intent.HasTarget {
		res.say("path: give a destination as q r.")
		return
	}
	id, err := h.unitFor(intent)
	if err != nil {
		res.say("%v", err)
		return
	}
	path, cost, ok, err := h.Engine.PathTo(id, intent.Target)
	if err != nil {
		res.say("%v", err)
		return
	}
	if !ok {
		res.say("Unit %d cannot reach %v this turn.", id, intent.Target)
		return
	}
	res.Overlay = &Overlay{Path: path}
	res.say("Path for unit %d, cost %d: %v", id, cost, path)
}

func (h *Host) execMove(res *Result, intent parser.Intent) {
	if !intent.HasTarget {
		res.say("move: give a destination as q r.")
		return
	}
	id, err := h.unitFor(intent)
	if err != nil {
		res.say("%v", err)
		return
	}
	u, ok := h.Engine.State.Unit(id)
	if !ok {
		res.say("unit %d not found", id)
		return
	}

	path := []hex.Coord{u.Position}
	if intent.Target != u.Position {
		var found bool
		path, _, found, _ = h.Engine.PathTo(id, intent.Target)
		if !found {
			res.say("Unit %d cannot reach %v this turn.", id, intent.Target)
			return
		}
	}

	facing := u.Facing
	if len(path) > 1 {
		facing = movement.SuggestFacing(path[len(path)-2], path[len(path)-1])
	}
	if intent.Facing != "" {
		facing, err = ParseFacing(intent.Facing)
		if err != nil {
			res.say("%v", err)
			return
		}
	}
	h.execCommand(res, types.Move{UnitID: id, Path: path, Facing: facing})
}

func (h *Host) execCommand(res *Result, cmd types.Command) {
	views, checkErr, err := h.commit(cmd)
	if err != nil {
		res.say("Rejected: %v", err)
		return
	}
	res.Events = append(res.Events, views...)
	for _, v := range views {
		res.Output = append(res.Output, v.Text)
	}
	if checkErr != nil {
		res.say("Warning: %v", checkErr)
	}
	if over, winner := h.GameOver(); over {
		res.say("Game over. Player %d wins.", winner)
	}
}

func (h *Host) execUnits(res *Result) {
	units := h.Units()
	if len(units) == 0 {
		res.say("No units on the field.")
		return
	}
	for _, u := range units {
		status := "ready"
		switch {
		case u.IsDestroyed:
			status = "destroyed"
		case u.HasMoved:
			status = "moved"
		}
		res.say("%3d  P%d  %-18s (%d,%d) %-9s MP %d/%d  %s",
			u.ID, u.Owner, u.DisplayName, u.Q, u.R, hex.Facing(u.Facing), u.MovementRemaining, u.MaxMovement, status)
	}
}

func (h *Host) execInfo(res *Result, intent parser.Intent) {
	id, err := h.unitFor(intent)
	if err != nil {
		res.say("%v", err)
		return
	}
	u, ok := h.Engine.State.Unit(id)
	if !ok {
		res.say("unit %d not found", id)
		return
	}
	v := NewUnitView(u)
	res.say("Unit %d: %s, Player %d, at (%d,%d) facing %s", v.ID, v.DisplayName, v.Owner, v.Q, v.R, u.Facing)
	res.say("  armor %d/%d  structure %d/%d  void shields %d/%d", v.Armor, v.MaxArmor, v.Structure, v.MaxStructure, v.VoidShields, v.MaxVoidShields)
	res.say("  movement %d/%d  moved %v  attacked %v  sprite %s", v.MovementRemaining, v.MaxMovement, v.HasMoved, v.HasAttacked, v.SpriteFrame)
}

func (h *Host) execVictory(res *Result) {
	if _, _, err := h.Engine.CheckObjectives(); err != nil {
		res.say("%v", err)
		return
	}
	h.Engine.CheckVictory()
	if over, winner := h.GameOver(); over {
		res.say("Game over. Player %d wins.", winner)
		return
	}
	s := h.Engine.State
	res.say("The battle continues: Player 1 has %s, Player 2 has %s.",
		english.Plural(s.Alive(types.Player1), "unit", "units"),
		english.Plural(s.Alive(types.Player2), "unit", "units"))
}

func (h *Host) execObjectives(res *Result) {
	objs := h.Engine.Objectives.Objectives()
	if len(objs) == 0 {
		res.say("No scenario objectives. Destroy every enemy unit.")
		return
	}
	for _, o := range objs {
		res.say("%s: Player %d wins when %s", o.Name, int(o.Winner), o.When)
	}
}

func (h *Host) execEvents(res *Result) {
	log := h.Engine.State.Events
	if len(log) == 0 {
		res.say("Nothing has happened yet.")
		return
	}
	start := 0
	if len(log) > 20 {
		start = len(log) - 20
	}
	for i := start; i < len(log); i++ {
		res.say("%4d  %s", i+1, events.Describe(log[i]))
	}
}

func (h *Host) execTerrain(res *Result, intent parser.Intent) {
	if !intent.HasTarget {
		res.say("terrain: give a hex as q r.")
		return
	}
	tile, ok := h.Engine.State.Map.Tile(intent.Target)
	if !ok {
		res.say("%v is off the map.", intent.Target)
		return
	}
	cost, passable := tile.Terrain.MoveCost()
	if !passable {
		res.say("%v: %s, elevation %d, impassable.", intent.Target, tile.Terrain, tile.Elevation)
		return
	}
	res.say("%v: %s, elevation %d, costs %d MP to enter.", intent.Target, tile.Terrain, tile.Elevation, cost)
}
