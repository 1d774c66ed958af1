package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df-mc/jsonc"

	"github.com/conveyorsim/conveyor/world"
)

// Scenario is a fixture of entity placements plus a step schedule, used
// by scenario-driven tests. It's loaded from a JSONC document so
// fixtures can carry explanatory comments.
type Scenario struct {
	Entities []ScenarioEntity `json:"entities"`
	Steps    []float64        `json:"steps"`
}

// ScenarioEntity is one AddEntity call a Scenario replays. X and Y are
// decoded as floats so a fractional position in a fixture is rejected
// with InvalidCoord during Apply rather than truncated by the JSON
// decoder.
type ScenarioEntity struct {
	Kind world.EntityKind `json:"kind"`
	X    float64          `json:"x"`
	Y    float64          `json:"y"`
	Rot  string           `json:"rot"`
}

// LoadScenario reads a JSONC scenario fixture from path, stripping
// comments via df-mc/jsonc before handing the result to encoding/json.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	stripped := jsonc.ToJSON(raw)
	var s Scenario
	if err := json.Unmarshal(stripped, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

// Apply replays the scenario's entity placements into w, in order,
// returning the allocated ids in the same order.
func (s *Scenario) Apply(w *world.World) ([]string, error) {
	ids := make([]string, 0, len(s.Entities))
	for _, se := range s.Entities {
		pos, err := world.CoordOf(se.X, se.Y)
		if err != nil {
			return nil, fmt.Errorf("scenario: add %s: %w", se.Kind, err)
		}
		rot, ok := world.ParseDirection(se.Rot)
		init := world.EntityInit{Pos: pos}
		if se.Rot != "" {
			if !ok {
				return nil, fmt.Errorf("scenario: invalid rotation %q", se.Rot)
			}
			init.Rot = rot
			init.HasRot = true
		}
		id, err := w.AddEntity(se.Kind, init)
		if err != nil {
			return nil, fmt.Errorf("scenario: add %s at %s: %w", se.Kind, pos, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RunSteps feeds the scenario's recorded Step(dt_ms) schedule into w, in
// order.
func (s *Scenario) RunSteps(w *world.World) error {
	for _, dt := range s.Steps {
		if err := w.Step(dt); err != nil {
			return err
		}
	}
	return nil
}
