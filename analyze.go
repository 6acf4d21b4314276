package torisat

import (
	"sort"

	"github.com/sirupsen/logrus"
)

//AnalysisResult is a learnt clause together with the level the search has
//to jump back to before the clause becomes asserting
type AnalysisResult struct {
	Learnt         *Clause
	BacktrackLevel int
}

//analyzer derives learnt clauses from conflicts. The implication graph is
//implicit: each propagated variable points at its antecedent clause, and the
//analyzer walks the trail backwards resolving against those antecedents
//until a single literal of the conflict level remains (the first UIP).
type analyzer struct {
	assignment *Assignment
	db         *ClauseDB
	logger     *logrus.Logger
}

func newAnalyzer(assignment *Assignment, db *ClauseDB, logger *logrus.Logger) *analyzer {
	return &analyzer{
		assignment: assignment,
		db:         db,
		logger:     logger,
	}
}

//AnalyzeConflict resolves the conflicting clause backwards along the trail.
//Every literal of the result is false under the current assignment and
//exactly one of them was assigned at the current level.
func (an *analyzer) AnalyzeConflict(conflict *Clause) AnalysisResult {
	a := an.assignment
	curLevel := a.CurrentLevel()

	resolvent := make(map[Lit]bool, conflict.Size())
	for _, l := range conflict.Literals() {
		resolvent[l] = true
	}
	curLevelLits := an.countAtLevel(resolvent, curLevel)

	trail := a.Trail()
	for idx := len(trail) - 1; curLevelLits > 1 && idx >= 0; idx-- {
		v := trail[idx]
		if a.Level(v) != curLevel {
			continue
		}

		pivot := NewLit(v, false)
		if !resolvent[pivot] {
			pivot = pivot.Flip()
			if !resolvent[pivot] {
				continue
			}
		}

		reason := a.Reason(v)
		if reason == ClaRefUndef {
			//The level's decision has no antecedent to resolve against
			continue
		}

		delete(resolvent, pivot)
		curLevelLits--
		for _, m := range an.db.Get(reason).Literals() {
			if m.Var() == v {
				continue
			}
			if resolvent[m] || resolvent[m.Flip()] {
				continue
			}
			resolvent[m] = true
			if a.Level(m.Var()) == curLevel {
				curLevelLits++
			}
		}
	}

	lits := make([]Lit, 0, len(resolvent))
	for l := range resolvent {
		lits = append(lits, l)
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i].X < lits[j].X })

	return AnalysisResult{
		Learnt:         NewClause(lits, true),
		BacktrackLevel: an.backjumpLevel(lits, curLevel),
	}
}

func (an *analyzer) countAtLevel(resolvent map[Lit]bool, level int) int {
	count := 0
	for l := range resolvent {
		if an.assignment.Level(l.Var()) == level {
			count++
		}
	}
	return count
}

//backjumpLevel returns the second-highest decision level among the learnt
//literals, which is where the clause becomes unit. A clause spanning a
//single level asserts at the root.
func (an *analyzer) backjumpLevel(lits []Lit, curLevel int) int {
	levelSet := make(map[int]bool, len(lits))
	for _, l := range lits {
		levelSet[an.assignment.Level(l.Var())] = true
	}
	levels := make([]int, 0, len(levelSet))
	for lvl := range levelSet {
		levels = append(levels, lvl)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	if len(levels) <= 1 {
		return 0
	}
	if levels[0] == curLevel {
		return levels[1]
	}
	//The walk above should always leave a literal of the conflict level in
	//the resolvent, so this branch is unexpected
	an.logger.WithFields(logrus.Fields{
		"maxLevel":      levels[0],
		"conflictLevel": curLevel,
	}).Warn("learnt clause does not reach the conflict level")
	return levels[0]
}
