package services

import (
	"workshop/internal/core/domain/model/manufacturing"
)

// LineAssigner picks a production line for a manufacturing order when it is
// first created.
//
// Selection:
//   - the highest priority active line serving the order's branch
//   - otherwise the highest priority active line overall
//   - otherwise none
//
// Ties keep the first line in the given order. An order that already has a
// line is left alone, so assignment happens once and is never re-run.
type LineAssigner struct{}

func NewLineAssigner() LineAssigner {
	return LineAssigner{}
}

// Assign sets the chosen line on mo and returns it, or nil when mo already has
// a line or no active line exists.
func (a LineAssigner) Assign(mo *manufacturing.ManufacturingOrder, lines []*manufacturing.ProductionLine) (*manufacturing.ProductionLine, error) {
	if err := mo.Validate(); err != nil {
		return nil, err
	}
	if mo.ProductionLineID() != nil {
		return nil, nil
	}

	best, err := a.findBestLine(mo, lines)
	if err != nil || best == nil {
		return nil, err
	}

	if err = mo.AssignLine(best.ID()); err != nil {
		return nil, err
	}
	return best, nil
}

func (a LineAssigner) findBestLine(mo *manufacturing.ManufacturingOrder, lines []*manufacturing.ProductionLine) (*manufacturing.ProductionLine, error) {
	var branchBest, globalBest *manufacturing.ProductionLine

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if !l.IsActive() {
			continue
		}
		if globalBest == nil || l.Priority() > globalBest.Priority() {
			globalBest = l
		}
		if l.Serves(mo.BranchID()) && (branchBest == nil || l.Priority() > branchBest.Priority()) {
			branchBest = l
		}
	}

	if branchBest != nil {
		return branchBest, nil
	}
	return globalBest, nil
}
