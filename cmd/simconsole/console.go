// Package main implements an interactive debug console that drives a
// world.World through its public contract only.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/conveyorsim/conveyor/world"
)

const (
	defaultPromptPrefix = "conveyor> "
	maxHistoryEntries   = 128
)

// errSimStopped is returned by commands submitted after the simulation
// loop has shut down.
var errSimStopped = errors.New("simulation loop stopped")

// Console reads commands from an io.Reader (defaulting to os.Stdin)
// and runs them against the Sim's world. Every world access goes
// through Sim.Do, so commands execute on the simulation goroutine and
// never race the background ticker.
type Console struct {
	sim     *Sim
	log     *slog.Logger
	reader  io.Reader
	history []string
}

// NewConsole returns a Console bound to sim.
func NewConsole(sim *Sim, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{sim: sim, log: log, reader: os.Stdin}
}

// WithReader sets a custom reader, enabling tests to drive the console
// without os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run consumes commands until ctx is cancelled or the reader hits EOF.
func (c *Console) Run(ctx context.Context) {
	if c.reader != os.Stdin {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *Console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		line := prompt.Input(defaultPromptPrefix, c.complete,
			prompt.OptionTitle("Conveyor Console"),
			prompt.OptionHistory(c.history),
			prompt.OptionPrefix(defaultPromptPrefix),
			prompt.OptionCompletionOnDown(),
			prompt.OptionMaxSuggestion(12),
		)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) execute(line string) {
	c.history = append(c.history, line)
	if len(c.history) > maxHistoryEntries {
		c.history = c.history[len(c.history)-maxHistoryEntries:]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	fn, ok := commands[name]
	if !ok {
		c.log.Error("unknown command", "command", name)
		return
	}
	if err := fn(c, args); err != nil {
		c.log.Error("command failed", "command", name, "err", err)
	}
}

// do submits fn to the simulation goroutine, translating a stopped
// loop into errSimStopped.
func (c *Console) do(fn func(*world.World)) error {
	if !c.sim.Do(fn) {
		return errSimStopped
	}
	return nil
}

type commandFunc func(c *Console, args []string) error

var commands = map[string]commandFunc{
	"step":   cmdStep,
	"pause":  cmdPause,
	"resume": cmdResume,
	"add":    cmdAdd,
	"rm":     cmdRemove,
	"list":   cmdList,
	"status": cmdStatus,
}

func cmdStep(c *Console, args []string) error {
	dt := world.TickMS
	if len(args) > 0 {
		parsed, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse dt: %w", err)
		}
		dt = parsed
	}
	var stepErr error
	if err := c.do(func(w *world.World) { stepErr = w.Step(dt) }); err != nil {
		return err
	}
	return stepErr
}

func cmdPause(c *Console, args []string) error {
	return c.do(func(w *world.World) { w.Pause() })
}

func cmdResume(c *Console, args []string) error {
	return c.do(func(w *world.World) { w.Resume() })
}

func cmdAdd(c *Console, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: add <kind> <x> <y> [rot]")
	}
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parse y: %w", err)
	}
	pos, err := world.CoordOf(x, y)
	if err != nil {
		return err
	}
	init := world.EntityInit{Pos: pos}
	if len(args) > 3 {
		rot, ok := world.ParseDirection(strings.ToUpper(args[3]))
		if !ok {
			return fmt.Errorf("invalid rotation %q", args[3])
		}
		init.Rot, init.HasRot = rot, true
	}
	var id string
	var addErr error
	if err := c.do(func(w *world.World) {
		id, addErr = w.AddEntity(world.EntityKind(args[0]), init)
	}); err != nil {
		return err
	}
	if addErr != nil {
		return addErr
	}
	c.log.Info("added entity", "id", id, "kind", args[0])
	return nil
}

func cmdRemove(c *Console, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <id>")
	}
	var removed bool
	if err := c.do(func(w *world.World) { removed = w.RemoveEntity(args[0]) }); err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no such entity %q", args[0])
	}
	return nil
}

func cmdList(c *Console, args []string) error {
	type row struct {
		id, kind, pos, rot string
	}
	var rows []row
	if err := c.do(func(w *world.World) {
		for _, e := range w.GetAllEntities() {
			rows = append(rows, row{e.ID, string(e.Kind), e.Pos.String(), e.Rot.String()})
		}
	}); err != nil {
		return err
	}
	for _, r := range rows {
		c.log.Info("entity", "id", r.id, "kind", r.kind, "pos", r.pos, "rot", r.rot)
	}
	return nil
}

func cmdStatus(c *Console, args []string) error {
	var snap world.PlacementSnapshot
	var sd world.SupplyDemand
	if err := c.do(func(w *world.World) {
		snap = w.GetPlacementSnapshot()
		sd = w.GetSupplyDemand()
	}); err != nil {
		return err
	}
	c.log.Info("status",
		"tick", snap.TickCount,
		"elapsed_ms", snap.ElapsedMs,
		"entities", snap.EntityCount,
		"paused", snap.Paused,
		"supply", sd.Supply,
		"demand", sd.Demand,
		"shortage", sd.Shortage,
	)
	return nil
}

func (c *Console) complete(doc prompt.Document) []prompt.Suggest {
	word := doc.GetWordBeforeCursor()
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	suggestions := make([]prompt.Suggest, 0, len(names))
	for _, name := range names {
		suggestions = append(suggestions, prompt.Suggest{Text: name})
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}
