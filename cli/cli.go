// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for a titanhunt game.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nathoo/titanhunt/host"
)

// CLI handles terminal interaction with the players. Both sides share
// one prompt; commands act for whoever is active.
type CLI struct {
	Host      *host.Host
	Title     string
	Intro     string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given host.
func New(h *host.Host, title, intro string) *CLI {
	return &CLI{
		Host:  h,
		Title: title,
		Intro: intro,
		In:    os.Stdin,
		Out:   os.Stdout,
	}
}

// Run starts the command loop. It shows the intro and the board, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Title != "" {
		c.printLine(c.Title)
	}
	if c.Intro != "" {
		c.printLine(c.Intro)
	}
	c.printLine("")
	c.printResult(c.Host.Exec("map"))
	c.printStatus()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Host.Exec(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
		if len(result.Events) > 0 {
			c.printStatus()
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState(arg)

	case "/map":
		c.printResult(c.Host.Exec("map"))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit          Exit",
		"  /help          Show this help",
		"  /map           Draw the battlefield",
		"  /state [file]  Dump the game state as JSON",
		"  /trace         Toggle event trace output",
		"",
		"Orders:",
		"  start                     Leave deployment",
		"  select <unit>             Select by id or name (s)",
		"  reach [unit]              Show where a unit can move (r)",
		"  path [unit] <q> <r>       Show the cheapest path (p)",
		"  move [unit] <q> <r> [facing <dir>]",
		"                            Move and turn (m, go)",
		"  end phase / end turn      Advance the turn cycle (ep, et)",
		"",
		"Information:",
		"  units, info [unit], events, objectives, victory",
		"  terrain <q> <r>, pixel <q> <r>, hex <x> <y>, map",
		"  again (g)                 Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState(path string) {
	data, err := c.Host.StateJSON()
	if err != nil {
		c.printSystem(fmt.Sprintf("State dump failed: %v", err))
		return
	}
	if path == "" {
		c.printLine(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("State dump failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("State written to %s.", path))
}

func (c *CLI) printStatus() {
	if over, winner := c.Host.GameOver(); over {
		c.printSystem(fmt.Sprintf("Game over. Player %d won on the %s turn.", winner, humanize.Ordinal(c.Host.CurrentTurn())))
		return
	}
	c.printSystem(fmt.Sprintf("%s turn, %s phase, Player %d to act",
		humanize.Ordinal(c.Host.CurrentTurn()), c.Host.CurrentPhase(), c.Host.ActivePlayer()))
}

func (c *CLI) printTrace(result host.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		data, err := json.Marshal(e.Data)
		if err != nil {
			data = []byte(err.Error())
		}
		c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Type, data))
	}
}

func (c *CLI) printResult(result host.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
