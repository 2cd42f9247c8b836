package unit

import (
	"strconv"
	"strings"

	"github.com/jcelerier/faust/signals"

	"tlog.app/go/errors"
)

// literal is a parsed numeric operand.
type literal struct {
	isReal bool
	i      int32
	r      float64
}

// parseLiteral parses an integer or real literal operand.  Literals containing
// a decimal point or an exponent are real, all others are 32-bit integers.
func parseLiteral(s string) (literal, bool) {
	if strings.ContainsAny(s, ".eE") {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return literal{}, false
		}

		return literal{isReal: true, r: r}, true
	}

	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return literal{}, false
	}

	return literal{i: int32(i)}, true
}

// Build constructs the signal graph of the unit in pool.  Every input and
// parameter is created first so they all appear in the graph's signature even
// when no output reads them.  Signals are simplified as they are built.
func (u *Unit) Build(pool *signals.Pool) (*signals.Graph, error) {
	scope := make(map[string]*signals.Node)

	for i := 0; i < u.Inputs; i++ {
		scope[signals.InputName(i)] = pool.Input(i)
	}

	for _, p := range u.Params {
		scope[p.Name] = pool.Param(p.Name, p.Type)
	}

	operand := func(s string) (*signals.Node, error) {
		if n, ok := scope[s]; ok {
			return n, nil
		}

		lit, ok := parseLiteral(s)
		if !ok {
			return nil, errors.New("unknown operand `%s`", s)
		}

		if lit.isReal {
			return pool.Real(lit.r), nil
		}

		return pool.Int(lit.i), nil
	}

	for _, sig := range u.Signals {
		x, err := operand(sig.Left)
		if err != nil {
			return nil, errors.Wrap(err, "signal %s", sig.Name)
		}

		y, err := operand(sig.Right)
		if err != nil {
			return nil, errors.Wrap(err, "signal %s", sig.Name)
		}

		scope[sig.Name] = pool.Build(sig.Op, x, y)
	}

	outputs := make([]signals.Output, len(u.Outputs))
	for i, name := range u.Outputs {
		n, ok := scope[name]
		if !ok {
			return nil, errors.New("unknown output `%s`", name)
		}

		outputs[i] = signals.Output{Name: name, Node: n}
	}

	return pool.Graph(u.Name, outputs), nil
}
