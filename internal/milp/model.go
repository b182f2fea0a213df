// Package milp is a small mixed-integer linear program solver: a Big-M
// simplex LP relaxation wrapped in a branch-and-bound search over the
// binary variables. It exists because nothing in the ecosystem ships a
// dependency-free MILP engine; see DESIGN.md for why this is hand-rolled
// rather than imported.
package milp

import "fmt"

// Kind distinguishes a variable that branch-and-bound must keep integral
// from one the LP relaxation may leave fractional.
type Kind int

const (
	Continuous Kind = iota
	Binary
)

// Variable is one column of the model. Bounds must be non-negative; the
// solver does not support free or negative-lower-bound variables, which the
// scheduler's formulation never needs.
type Variable struct {
	Name       string
	Kind       Kind
	LowerBound float64
	UpperBound float64
}

// Relation is a constraint's comparison operator.
type Relation int

const (
	LE Relation = iota
	GE
	EQ
)

// Constraint is a single linear row: sum(Coeffs[i] * x_i) Relation RHS.
type Constraint struct {
	Name     string
	Coeffs   map[int]float64
	Relation Relation
	RHS      float64
}

// Model is a mixed-integer linear program in variable-index form. Callers
// build it with NewModel/AddVariable/AddConstraint and hand it to Solve.
type Model struct {
	Variables   []Variable
	Constraints []Constraint
	Objective   map[int]float64
	Maximize    bool
}

// NewModel returns an empty model with the given optimization sense.
func NewModel(maximize bool) *Model {
	return &Model{
		Objective: make(map[int]float64),
		Maximize:  maximize,
	}
}

// AddVariable appends a variable and returns its index for use in
// Constraint.Coeffs and Model.Objective.
func (m *Model) AddVariable(v Variable) int {
	m.Variables = append(m.Variables, v)
	return len(m.Variables) - 1
}

// AddConstraint appends a row to the model.
func (m *Model) AddConstraint(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}

// SetObjective sets the objective coefficient for variable idx, overwriting
// any prior value.
func (m *Model) SetObjective(idx int, coeff float64) {
	m.Objective[idx] = coeff
}

func (m *Model) validate() error {
	for i, v := range m.Variables {
		if v.LowerBound < 0 {
			return fmt.Errorf("milp: variable %q (index %d) has negative lower bound %g, unsupported", v.Name, i, v.LowerBound)
		}
		if v.UpperBound < v.LowerBound {
			return fmt.Errorf("milp: variable %q (index %d) has upper bound %g below lower bound %g", v.Name, i, v.UpperBound, v.LowerBound)
		}
	}
	for _, c := range m.Constraints {
		for idx := range c.Coeffs {
			if idx < 0 || idx >= len(m.Variables) {
				return fmt.Errorf("milp: constraint %q references unknown variable index %d", c.Name, idx)
			}
		}
	}
	return nil
}
