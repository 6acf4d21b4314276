package torisat

import (
	"os"

	"github.com/k0kubun/pp"
)

//dumpState pretty-prints the conflict being analyzed and the surrounding
//trail. Only active in debug mode; the output is for humans chasing a bad
//learnt clause, not for machines.
func (s *Solver) dumpState(conflict *Clause, result AnalysisResult) {
	if !s.options.Debug {
		return
	}
	pp.Fprintln(os.Stderr, struct {
		Conflict   string
		Learnt     string
		Backtrack  int
		Level      int
		TrailSize  int
		Assignment string
	}{
		Conflict:   conflict.String(),
		Learnt:     result.Learnt.String(),
		Backtrack:  result.BacktrackLevel,
		Level:      s.assignment.CurrentLevel(),
		TrailSize:  len(s.assignment.Trail()),
		Assignment: s.assignment.String(),
	})
}
