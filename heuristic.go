package torisat

//VSIDS parameters. Decay is simulated by growing the increment, so the
//increment and the activities are rescaled together before they can
//overflow a float64.
const (
	activityDecay    = 0.95
	initialIncrement = 1.0
	rescaleThreshold = 1e100
	rescaleFactor    = 1e-100
)

//Heuristic picks decision variables by activity: variables involved in
//recent conflicts are bumped and preferred over quiet ones.
type Heuristic struct {
	order     *activityHeap
	increment float64
}

func NewHeuristic(numVars int) *Heuristic {
	h := &Heuristic{
		order:     newActivityHeap(numVars),
		increment: initialIncrement,
	}
	for v := 0; v < numVars; v++ {
		h.order.PushBack(Var(v))
	}
	return h
}

//ChooseVariable returns the unassigned variable with the highest activity,
//ties broken by the smaller variable index. Returns VarUndef when every
//variable is assigned.
func (h *Heuristic) ChooseVariable(a *Assignment) Var {
	for !h.order.Empty() {
		next := h.order.RemoveMin()
		if !a.IsAssigned(next) {
			return next
		}
	}
	return VarUndef
}

//ChooseValue returns the polarity to try first for v
//Assigning false first matches the chronological search order of the
//original solver.
func (h *Heuristic) ChooseValue(v Var) bool {
	return false
}

//BumpActivity raises v's score by the current increment
func (h *Heuristic) BumpActivity(v Var) {
	h.order.activity[v] += h.increment
	if h.order.activity[v] > rescaleThreshold {
		h.rescale()
	}
	if h.order.InHeap(v) {
		h.order.Decrease(v)
	}
}

//BumpClause bumps every variable appearing in c
func (h *Heuristic) BumpClause(c *Clause) {
	for _, l := range c.Literals() {
		h.BumpActivity(l.Var())
	}
}

//DecayActivities ages every score by growing the increment instead of
//touching the scores, which keeps their relative order
func (h *Heuristic) DecayActivities() {
	h.increment /= activityDecay
}

//OnUnassign makes v selectable again after a backtrack
func (h *Heuristic) OnUnassign(v Var) {
	if !h.order.InHeap(v) {
		h.order.PushBack(v)
	}
}

//Activity returns v's current score
func (h *Heuristic) Activity(v Var) float64 {
	return h.order.Activity(v)
}

func (h *Heuristic) rescale() {
	for v := range h.order.activity {
		h.order.activity[v] *= rescaleFactor
	}
	h.increment *= rescaleFactor
}
