package manufacturing

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrProductionLineIsNotConstructed = errors.New("ProductionLine must be created via NewProductionLine constructor")

// ProductionLine is a production resource manufacturing orders are routed to.
// A higher priority wins during auto-assignment.
type ProductionLine struct {
	id            kernel.UUID
	name          string
	priority      int
	active        bool
	branchIDs     []kernel.UUID
	isConstructed bool
}

func NewProductionLine(id kernel.UUID, name string, priority int, active bool, branchIDs []kernel.UUID) (*ProductionLine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	return &ProductionLine{
		id:            id,
		name:          name,
		priority:      priority,
		active:        active,
		branchIDs:     append([]kernel.UUID(nil), branchIDs...),
		isConstructed: true,
	}, nil
}

func (l *ProductionLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrProductionLineIsNotConstructed
	}
	return nil
}

func (l *ProductionLine) ID() kernel.UUID { return l.id }
func (l *ProductionLine) Name() string    { return l.name }
func (l *ProductionLine) Priority() int   { return l.priority }
func (l *ProductionLine) IsActive() bool  { return l.active }

func (l *ProductionLine) BranchIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), l.branchIDs...)
}

// Serves reports whether the line is associated with branch.
func (l *ProductionLine) Serves(branch *kernel.UUID) bool {
	if branch == nil {
		return false
	}
	for _, id := range l.branchIDs {
		if id.IsEqual(*branch) {
			return true
		}
	}
	return false
}
