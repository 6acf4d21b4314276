package torisat

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

//ErrInvalidInput marks clause sets that are not valid CNF input
var ErrInvalidInput = errors.New("invalid CNF input")

//Solver decides satisfiability of a CNF formula over a fixed variable
//universe with conflict-driven clause learning.
type Solver struct {
	options    Options
	db         *ClauseDB
	assignment *Assignment
	heuristic  *Heuristic
	analyzer   *analyzer
	logger     *logrus.Logger
	Statistics *Statistics
	Model      []LitBool //Total assignment after a satisfiable solve
}

//NewSolver builds a solver over the variable universe {x1..xnumVars}
func NewSolver(numVars int, options Options) *Solver {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if options.Verbosity {
		logger.SetLevel(logrus.InfoLevel)
	}
	if options.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	db := NewClauseDB()
	assignment := NewAssignment(numVars, db)
	return &Solver{
		options:    options,
		db:         db,
		assignment: assignment,
		heuristic:  NewHeuristic(numVars),
		analyzer:   newAnalyzer(assignment, db, logger),
		logger:     logger,
		Statistics: NewStatistics(),
	}
}

func (s *Solver) NumVars() int {
	return s.assignment.NumVars()
}

//Assignment exposes the trail, e.g. for reading a model incrementally or
//inspecting levels after a solve
func (s *Solver) Assignment() *Assignment {
	return s.assignment
}

//AddClause registers a problem clause. Tautologies are dropped and repeated
//literals collapsed; an empty clause or an out-of-universe variable is
//invalid input. Clauses can only be added before the search starts.
func (s *Solver) AddClause(lits []Lit) error {
	if s.assignment.CurrentLevel() != 0 || len(s.assignment.Trail()) > 0 {
		panic(fmt.Errorf("clause added during search at level %d", s.assignment.CurrentLevel()))
	}
	if len(lits) == 0 {
		return errors.Wrap(ErrInvalidInput, "empty clause")
	}

	seen := make(map[Lit]bool, len(lits))
	deduped := make([]Lit, 0, len(lits))
	for _, l := range lits {
		if l.Var() < 0 || int(l.Var()) >= s.NumVars() {
			return errors.Wrapf(ErrInvalidInput, "variable %d outside universe of size %d", l.Var()+1, s.NumVars())
		}
		if seen[l.Flip()] {
			//Tautology, true under every assignment
			return nil
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		deduped = append(deduped, l)
	}

	s.db.Add(NewClause(deduped, false))
	s.Statistics.NumClauses++
	return nil
}

//AddClauseFromDimacs registers a clause given as signed 1-based integers
func (s *Solver) AddClauseFromDimacs(values []int) error {
	lits := make([]Lit, 0, len(values))
	for _, value := range values {
		if value == 0 {
			return errors.Wrap(ErrInvalidInput, "literal 0 inside clause")
		}
		lits = append(lits, NewLitFromDimacs(value))
	}
	return s.AddClause(lits)
}

//Solve runs the search and returns LitBoolTrue when a satisfying
//assignment exists, LitBoolFalse when none does. On a satisfiable outcome
//the Model field holds a total assignment.
func (s *Solver) Solve() LitBool {
	//Everything forced before the first decision lives at level 0; a
	//conflict there needs no analysis
	if conflict := s.propagate(); conflict != nil {
		s.logger.WithField("clause", conflict.String()).Debug("conflict during initial propagation")
		return LitBoolFalse
	}

	for {
		if s.assignment.IsComplete() {
			s.storeModel()
			return LitBoolTrue
		}

		next := s.heuristic.ChooseVariable(s.assignment)
		if next == VarUndef {
			s.storeModel()
			return LitBoolTrue
		}
		s.Statistics.DecisionCount++
		s.assignment.Decide(next, s.heuristic.ChooseValue(next))
		s.logger.WithFields(logrus.Fields{
			"variable": int(next) + 1,
			"level":    s.assignment.CurrentLevel(),
		}).Debug("decide")

		for conflict := s.propagate(); conflict != nil; conflict = s.propagate() {
			s.Statistics.ConflictCount++
			if s.assignment.CurrentLevel() == 0 {
				return LitBoolFalse
			}

			result := s.analyzer.AnalyzeConflict(conflict)
			s.dumpState(conflict, result)

			s.db.Add(result.Learnt)
			s.Statistics.NumLearnts++
			s.heuristic.BumpClause(result.Learnt)
			s.heuristic.DecayActivities()

			if result.BacktrackLevel < 0 {
				return LitBoolFalse
			}
			for _, v := range s.assignment.Backtrack(result.BacktrackLevel) {
				s.heuristic.OnUnassign(v)
			}
			s.logger.WithFields(logrus.Fields{
				"learnt": result.Learnt.String(),
				"level":  result.BacktrackLevel,
			}).Debug("backjump")
		}
	}
}

//propagate runs boolean constraint propagation to a fixed point, scanning
//problem and learnt clauses in registration order. The first falsified
//clause is returned; nil means no conflict.
func (s *Solver) propagate() *Clause {
	for changed := true; changed; {
		changed = false
		for ref := ClauseRef(0); int(ref) < s.db.Len(); ref++ {
			c := s.db.Get(ref)
			if c.IsSatisfied(s.assignment) {
				continue
			}
			if c.IsConflicting(s.assignment) {
				return c
			}
			if unit, ok := c.UnitLiteral(s.assignment); ok {
				s.Statistics.PropagationCount++
				s.assignment.Propagate(unit.Var(), !unit.Sign(), ref)
				changed = true
			}
		}
	}
	return nil
}

func (s *Solver) storeModel() {
	s.Model = make([]LitBool, s.NumVars())
	for v := 0; v < s.NumVars(); v++ {
		s.Model[v] = s.assignment.Value(Var(v))
	}
}

//ModelLiterals returns the model as signed 1-based integers
func (s *Solver) ModelLiterals() []int {
	return lo.Map(s.Model, func(value LitBool, v int) int {
		if value == LitBoolTrue {
			return v + 1
		}
		return -(v + 1)
	})
}

//CheckSAT decides a formula given as clauses of signed 1-based integers
//over the universe {x1..xnumVars}. An empty clause list is trivially
//satisfiable.
func CheckSAT(clauses [][]int, numVars int) (bool, error) {
	if numVars < 0 {
		return false, errors.Wrapf(ErrInvalidInput, "negative universe size %d", numVars)
	}
	if len(clauses) == 0 {
		return true, nil
	}
	s := NewSolver(numVars, DefaultOptions())
	for _, clause := range clauses {
		if err := s.AddClauseFromDimacs(clause); err != nil {
			return false, err
		}
	}
	return s.Solve() == LitBoolTrue, nil
}
