package engine

import "github.com/boardbuyer/boardbuyer/internal/model"

// Scenario defines a named settings variant to compare.
type Scenario struct {
	Name     string
	Settings model.Settings
}

// ScenarioResult holds the plan and computed statistics for one scenario.
// Err is set when the scenario could not produce a plan (e.g. rotation
// disabled makes a piece infeasible); its statistics are then zero.
type ScenarioResult struct {
	Scenario     Scenario
	Plan         model.Plan
	Err          error
	BoardsUsed   int
	TotalCost    float64
	WastePercent float64
}

// CompareScenarios runs the optimizer once per scenario and returns the
// results in scenario order, for side-by-side what-if reporting.
func CompareScenarios(scenarios []Scenario, pieces []model.Piece, catalogue []model.BoardType) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		opt := New(sc.Settings)
		plan, err := opt.Optimize(pieces, catalogue)

		res := ScenarioResult{Scenario: sc, Plan: plan, Err: err}
		if err == nil {
			res.BoardsUsed = len(plan.Boards)
			res.TotalCost = plan.TotalCost()
			res.WastePercent = 100.0 - plan.TotalEfficiency()
		}
		results = append(results, res)
	}
	return results
}

// DefaultScenarios varies the key packing parameters around a base
// configuration to show what-if alternatives.
func DefaultScenarios(base model.Settings) []Scenario {
	noRotate := base
	noRotate.AllowRotation = false

	pruned := base
	pruned.ExperimentalPrune = true

	return []Scenario{
		{Name: "Current settings", Settings: base},
		{Name: "No rotation", Settings: noRotate},
		{Name: "Pruned free rectangles", Settings: pruned},
	}
}
