package torisat

import (
	"sort"
	"strings"
)

//Clause is a disjunction of literals
//The literal slice is fixed at allocation and never mutated afterwards
type Clause struct {
	lits   []Lit
	learnt bool
}

func NewClause(ps []Lit, learnt bool) *Clause {
	c := Clause{
		lits:   make([]Lit, len(ps)),
		learnt: learnt,
	}
	copy(c.lits, ps)
	return &c
}

func (c *Clause) Size() int {
	return len(c.lits)
}

func (c *Clause) At(i int) Lit {
	return c.lits[i]
}

//Literals returns the literal sequence
//Callers must not modify the returned slice
func (c *Clause) Literals() []Lit {
	return c.lits
}

func (c *Clause) Learnt() bool {
	return c.learnt
}

//IsSatisfied reports whether some literal is true under a
func (c *Clause) IsSatisfied(a *Assignment) bool {
	for _, l := range c.lits {
		if a.ValueLit(l) == LitBoolTrue {
			return true
		}
	}
	return false
}

//IsConflicting reports whether every literal is assigned and false under a
func (c *Clause) IsConflicting(a *Assignment) bool {
	for _, l := range c.lits {
		if a.ValueLit(l) != LitBoolFalse {
			return false
		}
	}
	return true
}

//UnitLiteral returns the sole unassigned literal when the clause is unit
//under a. The second return value is false when the clause is satisfied,
//conflicting, or has two or more unassigned literals.
func (c *Clause) UnitLiteral(a *Assignment) (Lit, bool) {
	unit := Lit{X: LitUndef}
	unassigned := 0
	for _, l := range c.lits {
		switch a.ValueLit(l) {
		case LitBoolTrue:
			return Lit{X: LitUndef}, false
		case LitBoolUndef:
			unassigned++
			if unassigned > 1 {
				return Lit{X: LitUndef}, false
			}
			unit = l
		}
	}
	if unassigned != 1 {
		return Lit{X: LitUndef}, false
	}
	return unit, true
}

//IsTautology reports whether the clause contains a literal and its negation
func (c *Clause) IsTautology() bool {
	seen := make(map[Lit]bool, len(c.lits))
	for _, l := range c.lits {
		if seen[l.Flip()] {
			return true
		}
		seen[l] = true
	}
	return false
}

//Equal compares the literal sets, ignoring order and duplicates
func (c *Clause) Equal(other *Clause) bool {
	set := make(map[Lit]bool, len(c.lits))
	for _, l := range c.lits {
		set[l] = true
	}
	otherSet := make(map[Lit]bool, len(other.lits))
	for _, l := range other.lits {
		if !set[l] {
			return false
		}
		otherSet[l] = true
	}
	return len(set) == len(otherSet)
}

func (c *Clause) String() string {
	dimacs := make([]string, len(c.lits))
	sorted := make([]Lit, len(c.lits))
	copy(sorted, c.lits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	for i, l := range sorted {
		dimacs[i] = l.String()
	}
	return "(" + strings.Join(dimacs, " ") + ")"
}
