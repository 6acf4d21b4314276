package torisat

//Statistics counts the work done by a solve
type Statistics struct {
	DecisionCount    uint64
	PropagationCount uint64
	ConflictCount    uint64
	NumLearnts       uint64
	NumClauses       uint64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}
