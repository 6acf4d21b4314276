package torisat

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//CNF is a DIMACS problem: clauses of signed 1-based integers over the
//universe {x1..xNumVars}
type CNF struct {
	NumVars int
	Clauses [][]int
}

//ParseDimacs reads a DIMACS CNF problem, one clause per line terminated by
//0. Comment lines are skipped. The universe is the larger of the header
//declaration and the highest variable actually used.
func ParseDimacs(in *bufio.Scanner) (*CNF, error) {
	cnf := &CNF{}
	declaredClauses := -1
	lineNo := 0
	for in.Scan() {
		lineNo++
		line := strings.TrimSpace(in.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, errors.Wrapf(ErrInvalidInput, "line %d: malformed problem line %q", lineNo, line)
			}
			declaredVars, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: variable count", lineNo)
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: clause count", lineNo)
			}
			if declaredVars > cnf.NumVars {
				cnf.NumVars = declaredVars
			}
			continue
		}

		clause, err := readClause(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		for _, value := range clause {
			if value < 0 {
				value = -value
			}
			if value > cnf.NumVars {
				cnf.NumVars = value
			}
		}
		cnf.Clauses = append(cnf.Clauses, clause)
	}
	if err := in.Err(); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	if declaredClauses >= 0 && declaredClauses != len(cnf.Clauses) {
		return nil, errors.Wrapf(ErrInvalidInput, "header declares %d clauses, found %d", declaredClauses, len(cnf.Clauses))
	}
	return cnf, nil
}

func readClause(line string) ([]int, error) {
	values := strings.Fields(line)
	if values[len(values)-1] != "0" {
		return nil, errors.Wrapf(ErrInvalidInput, "clause does not end with 0: %q", line)
	}
	clause := make([]int, 0, len(values)-1)
	for _, field := range values[:len(values)-1] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "literal %q", field)
		}
		if value == 0 {
			return nil, errors.Wrapf(ErrInvalidInput, "literal 0 inside clause: %q", line)
		}
		clause = append(clause, value)
	}
	return clause, nil
}

//Dimacs serialises the problem back to DIMACS CNF format
func (f *CNF) Dimacs() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", f.NumVars, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

//NewSolver builds a solver loaded with the problem's clauses
func (f *CNF) NewSolver(options Options) (*Solver, error) {
	s := NewSolver(f.NumVars, options)
	for _, clause := range f.Clauses {
		if err := s.AddClauseFromDimacs(clause); err != nil {
			return nil, err
		}
	}
	return s, nil
}
