package torisat

import "fmt"

//Var is a 0-based variable index
type Var int

const VarUndef Var = -1

//LitBool is a three-valued boolean for literals and variables
type LitBool int

const (
	LitBoolTrue  LitBool = 0
	LitBoolFalse LitBool = 1
	LitBoolUndef LitBool = 2
)

//Lit is a literal over a Var
//A positive literal of v is encoded as 2v, a negated one as 2v+1
type Lit struct {
	X int
}

const LitUndef = -2

//NewLit returns a Lit over x
//The negated literal is returned when sign is true
func NewLit(x Var, sign bool) Lit {
	y := 2 * int(x)
	if sign {
		y++
	}
	return Lit{X: y}
}

//NewLitFromDimacs converts a non-zero DIMACS integer into a Lit
//(1 -> x0, -1 -> not x0, ...)
func NewLitFromDimacs(value int) Lit {
	if value == 0 {
		panic("zero is not a DIMACS literal")
	}
	if value > 0 {
		return NewLit(Var(value-1), false)
	}
	return NewLit(Var(-value-1), true)
}

func (l Lit) Equal(p Lit) bool {
	return l.X == p.X
}

func (l Lit) NotEqual(p Lit) bool {
	return !l.Equal(p)
}

//Sign returns true for a negated literal
func (l Lit) Sign() bool {
	return l.X&1 == 1
}

//Flip returns the negation of the literal
func (l Lit) Flip() Lit {
	return Lit{X: l.X ^ 1}
}

func (l Lit) Var() Var {
	return Var(l.X >> 1)
}

//Dimacs returns the signed 1-based integer form of the literal
func (l Lit) Dimacs() int {
	v := int(l.Var()) + 1
	if l.Sign() {
		return -v
	}
	return v
}

func (l Lit) String() string {
	return fmt.Sprintf("%d", l.Dimacs())
}
