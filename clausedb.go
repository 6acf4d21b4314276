package torisat

import (
	"fmt"
	"math"
)

//ClauseRef is a stable handle into a ClauseDB
type ClauseRef uint32

const ClaRefUndef ClauseRef = math.MaxUint32

//ClauseDB owns every clause of a solve: the problem clauses registered up
//front and the learnt clauses appended during search. References stay valid
//for the lifetime of the database; clauses are never removed.
type ClauseDB struct {
	clauses []*Clause
	learnts []ClauseRef
}

func NewClauseDB() *ClauseDB {
	return &ClauseDB{}
}

//Add stores a clause and returns its reference
func (db *ClauseDB) Add(c *Clause) ClauseRef {
	ref := ClauseRef(len(db.clauses))
	db.clauses = append(db.clauses, c)
	if c.Learnt() {
		db.learnts = append(db.learnts, ref)
	}
	return ref
}

func (db *ClauseDB) Get(ref ClauseRef) *Clause {
	if int(ref) >= len(db.clauses) {
		panic(fmt.Errorf("clause is not allocated: %d", ref))
	}
	return db.clauses[ref]
}

//Len returns the total number of stored clauses
func (db *ClauseDB) Len() int {
	return len(db.clauses)
}

func (db *ClauseDB) NumLearnts() int {
	return len(db.learnts)
}
