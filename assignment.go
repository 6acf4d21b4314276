package torisat

import (
	"fmt"
	"strings"
)

//varData stores why and how deep a variable was assigned
type varData struct {
	Reason ClauseRef //ClaRefUndef for decisions
	Level  int
}

//Assignment is the partial assignment of a solve: per-variable values,
//decision levels and antecedents, plus the trail recording assignment order.
type Assignment struct {
	db      *ClauseDB
	assigns []LitBool
	data    []varData
	trail   []Var
	depth   int
}

func NewAssignment(numVars int, db *ClauseDB) *Assignment {
	a := &Assignment{
		db:      db,
		assigns: make([]LitBool, numVars),
		data:    make([]varData, numVars),
	}
	for v := range a.assigns {
		a.assigns[v] = LitBoolUndef
		a.data[v] = varData{Reason: ClaRefUndef, Level: 0}
	}
	return a
}

func (a *Assignment) NumVars() int {
	return len(a.assigns)
}

//Value returns the assigned value of v, LitBoolUndef when unassigned
func (a *Assignment) Value(v Var) LitBool {
	return a.assigns[v]
}

//ValueLit evaluates a literal under the current assignment
func (a *Assignment) ValueLit(p Lit) LitBool {
	switch a.assigns[p.Var()] {
	case LitBoolUndef:
		return LitBoolUndef
	case LitBoolTrue:
		if !p.Sign() {
			return LitBoolTrue
		}
	case LitBoolFalse:
		if p.Sign() {
			return LitBoolTrue
		}
	}
	return LitBoolFalse
}

//Level returns the decision level v was assigned at
//The result is meaningless for unassigned variables
func (a *Assignment) Level(v Var) int {
	return a.data[v].Level
}

//Reason returns the antecedent clause reference of v, ClaRefUndef for
//decisions and unassigned variables
func (a *Assignment) Reason(v Var) ClauseRef {
	return a.data[v].Reason
}

func (a *Assignment) IsAssigned(v Var) bool {
	return a.assigns[v] != LitBoolUndef
}

//IsComplete reports whether every variable of the universe is assigned
func (a *Assignment) IsComplete() bool {
	return len(a.trail) == len(a.assigns)
}

//CurrentLevel returns the current decision depth
func (a *Assignment) CurrentLevel() int {
	return a.depth
}

//Trail returns the assigned variables in assignment order
//Callers must not modify the returned slice
func (a *Assignment) Trail() []Var {
	return a.trail
}

//UnassignedVariables returns every variable without a value
func (a *Assignment) UnassignedVariables() []Var {
	var unassigned []Var
	for v := range a.assigns {
		if a.assigns[v] == LitBoolUndef {
			unassigned = append(unassigned, Var(v))
		}
	}
	return unassigned
}

//VariablesAtLevel returns the trail entries assigned at level, oldest first
func (a *Assignment) VariablesAtLevel(level int) []Var {
	var vars []Var
	for _, v := range a.trail {
		if a.data[v].Level == level {
			vars = append(vars, v)
		}
	}
	return vars
}

//Decide opens a new decision level and assigns v to value
func (a *Assignment) Decide(v Var, value bool) {
	a.depth++
	a.assign(v, value, ClaRefUndef)
}

//Propagate assigns v to value at the current level, forced by reason.
//The reason must be unit under the assignment with v as its unit literal.
func (a *Assignment) Propagate(v Var, value bool, reason ClauseRef) {
	c := a.db.Get(reason)
	forced := NewLit(v, !value)
	for _, l := range c.Literals() {
		if l.Var() == v {
			if l.NotEqual(forced) {
				panic(fmt.Errorf("reason %v does not force %v", c, forced))
			}
			continue
		}
		if a.ValueLit(l) != LitBoolFalse {
			panic(fmt.Errorf("reason %v is not unit: %v is not false", c, l))
		}
	}
	a.assign(v, value, reason)
}

func (a *Assignment) assign(v Var, value bool, reason ClauseRef) {
	if a.assigns[v] != LitBoolUndef {
		panic(fmt.Errorf("variable is already assigned: %d", int(v)+1))
	}
	if value {
		a.assigns[v] = LitBoolTrue
	} else {
		a.assigns[v] = LitBoolFalse
	}
	a.data[v] = varData{Reason: reason, Level: a.depth}
	a.trail = append(a.trail, v)
}

//Backtrack pops every trail entry above targetLevel and sets the depth.
//Entries at targetLevel and below are untouched. The unassigned variables
//are returned newest first.
func (a *Assignment) Backtrack(targetLevel int) []Var {
	if targetLevel < 0 || targetLevel > a.depth {
		panic(fmt.Errorf("backtrack level out of range: %d (current %d)", targetLevel, a.depth))
	}
	var popped []Var
	for len(a.trail) > 0 {
		v := a.trail[len(a.trail)-1]
		if a.data[v].Level <= targetLevel {
			break
		}
		a.trail = a.trail[:len(a.trail)-1]
		a.assigns[v] = LitBoolUndef
		a.data[v] = varData{Reason: ClaRefUndef, Level: 0}
		popped = append(popped, v)
	}
	a.depth = targetLevel
	return popped
}

func (a *Assignment) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assignment[level=%d, vars={", a.depth)
	for _, v := range a.trail {
		kind := "D"
		if a.data[v].Reason != ClaRefUndef {
			kind = "P"
		}
		fmt.Fprintf(&b, "x%d=%v@%d(%s) ", int(v)+1, a.assigns[v] == LitBoolTrue, a.data[v].Level, kind)
	}
	b.WriteString("}]")
	return b.String()
}
