package torisat

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/go-air/gini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solverFor(t *testing.T, numVars int, clauses [][]int) *Solver {
	t.Helper()
	s := NewSolver(numVars, DefaultOptions())
	for _, clause := range clauses {
		require.NoError(t, s.AddClauseFromDimacs(clause))
	}
	return s
}

// checkTrailInvariants verifies the trail level ordering and the antecedent
// condition for every propagated variable.
func checkTrailInvariants(t *testing.T, a *Assignment) {
	t.Helper()
	prevLevel := 0
	for _, v := range a.Trail() {
		require.GreaterOrEqual(t, a.Level(v), prevLevel, "trail levels decreased")
		prevLevel = a.Level(v)

		reason := a.Reason(v)
		if reason == ClaRefUndef {
			continue
		}
		for _, l := range a.db.Get(reason).Literals() {
			if l.Var() == v {
				continue
			}
			require.Equal(t, LitBoolFalse, a.ValueLit(l), "antecedent literal %v is not false", l)
			require.LessOrEqual(t, a.Level(l.Var()), a.Level(v), "antecedent literal assigned above the propagation")
		}
	}
}

func modelSatisfies(s *Solver, clauses [][]int) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, value := range clause {
			l := NewLitFromDimacs(value)
			truth := s.Model[l.Var()] == LitBoolTrue
			if truth != l.Sign() {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func TestSolveTrivialSat(t *testing.T) {
	s := solverFor(t, 1, [][]int{{1}})
	require.Equal(t, LitBoolTrue, s.Solve())
	assert.Equal(t, LitBoolTrue, s.Model[0])
	assert.Equal(t, 0, s.assignment.Level(0), "a unit input clause is forced before any decision")
}

func TestSolveTrivialUnsat(t *testing.T) {
	s := solverFor(t, 1, [][]int{{1}, {-1}})
	require.Equal(t, LitBoolFalse, s.Solve())
	assert.Zero(t, s.Statistics.DecisionCount, "the contradiction shows up during initial propagation")
}

func TestSolveForcedChain(t *testing.T) {
	s := solverFor(t, 3, [][]int{{1}, {-1, 2}, {-2, 3}})
	require.Equal(t, LitBoolTrue, s.Solve())
	for v := 0; v < 3; v++ {
		assert.Equal(t, LitBoolTrue, s.Model[v])
		assert.Equal(t, 0, s.assignment.Level(Var(v)))
	}
	assert.Zero(t, s.Statistics.DecisionCount)
	checkTrailInvariants(t, s.assignment)
}

func TestSolveUnsatTriangle(t *testing.T) {
	s := solverFor(t, 2, [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}})
	require.Equal(t, LitBoolFalse, s.Solve())
	assert.GreaterOrEqual(t, s.Statistics.NumLearnts, uint64(1))
	assert.Equal(t, 0, s.assignment.CurrentLevel(), "refutation completes at the root level")
}

func TestSolvePigeonHole(t *testing.T) {
	// Three pigeons into two holes; variable 2*(i-1)+j is pigeon i in hole j.
	clauses := [][]int{
		{1, 2}, {3, 4}, {5, 6},
		{-1, -3}, {-1, -5}, {-3, -5},
		{-2, -4}, {-2, -6}, {-4, -6},
	}
	s := solverFor(t, 6, clauses)
	require.Equal(t, LitBoolFalse, s.Solve())
}

func TestSolveSatisfiableWithBackjumps(t *testing.T) {
	clauses := [][]int{
		{1, 3}, {2, 4}, {-3, -4, 5}, {-4, -5}, {3, 4, -5}, {1, 2, 5},
	}
	s := solverFor(t, 5, clauses)
	require.Equal(t, LitBoolTrue, s.Solve())
	assert.True(t, modelSatisfies(s, clauses))
	checkTrailInvariants(t, s.assignment)
}

func generate3SAT(rng *rand.Rand, numVars, numClauses int) *CNF {
	cnf := &CNF{NumVars: numVars}
	for i := 0; i < numClauses; i++ {
		vars := rng.Perm(numVars)[:3]
		clause := make([]int, 0, 3)
		for _, v := range vars {
			literal := v + 1
			if rng.Intn(2) == 0 {
				literal = -literal
			}
			clause = append(clause, literal)
		}
		cnf.Clauses = append(cnf.Clauses, clause)
	}
	return cnf
}

func referenceVerdict(t *testing.T, cnf *CNF) bool {
	t.Helper()
	g, err := gini.NewDimacs(strings.NewReader(cnf.Dimacs()))
	require.NoError(t, err)
	switch g.Solve() {
	case 1:
		return true
	case -1:
		return false
	}
	t.Fatal("reference solver did not reach a verdict")
	return false
}

// Seeded random 3-SAT at ratio 3.0, cross-checked against an independent
// solver. Any model we produce must satisfy the instance it came from.
func TestSolveRandom3SATAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(20240131))
	for round := 0; round < 20; round++ {
		cnf := generate3SAT(rng, 20, 60)
		s, err := cnf.NewSolver(DefaultOptions())
		require.NoError(t, err)

		got := s.Solve() == LitBoolTrue
		want := referenceVerdict(t, cnf)
		require.Equal(t, want, got, "verdict mismatch on round %d", round)

		if got {
			assert.True(t, modelSatisfies(s, cnf.Clauses), "model does not satisfy the instance on round %d", round)
			checkTrailInvariants(t, s.assignment)
		}
	}
}

func TestCheckSAT(t *testing.T) {
	satisfiable, err := CheckSAT([][]int{{1, 2}, {-1, 2}}, 2)
	require.NoError(t, err)
	assert.True(t, satisfiable)

	satisfiable, err = CheckSAT([][]int{{1}, {-1}}, 1)
	require.NoError(t, err)
	assert.False(t, satisfiable)

	satisfiable, err = CheckSAT(nil, 3)
	require.NoError(t, err)
	assert.True(t, satisfiable, "an empty clause list constrains nothing")
}

func TestCheckSATInvalidInput(t *testing.T) {
	_, err := CheckSAT([][]int{{}}, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = CheckSAT([][]int{{1, 0}}, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = CheckSAT([][]int{{3}}, 2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddClauseDropsTautologyAndDuplicates(t *testing.T) {
	s := NewSolver(2, DefaultOptions())

	require.NoError(t, s.AddClauseFromDimacs([]int{1, -1}))
	assert.Equal(t, 0, s.db.Len(), "tautologies never reach the database")

	require.NoError(t, s.AddClauseFromDimacs([]int{1, 1, 2}))
	require.Equal(t, 1, s.db.Len())
	assert.Equal(t, 2, s.db.Get(0).Size())
}
