package build

import (
	"github.com/jcelerier/faust/interp"
	"github.com/jcelerier/faust/signals"
	"github.com/jcelerier/faust/unit"

	"tlog.app/go/errors"
)

// Sample is the value of one output of a unit for one sample.
type Sample struct {
	Name  string
	Value float64
}

// Run loads the unit file at path, compiles it for the interpreter and runs it
// for a single sample with the given input and parameter values.
func Run(path string, inputs []float64, params map[string]float64) ([]Sample, error) {
	u, _, err := unit.Load(path, "")
	if err != nil {
		return nil, err
	}

	g, err := u.Build(signals.NewPool())
	if err != nil {
		return nil, errors.Wrap(err, "build %s", u.Name)
	}

	prog, err := interp.Compile(g)
	if err != nil {
		return nil, err
	}

	values, err := prog.Exec(inputs, params)
	if err != nil {
		return nil, errors.Wrap(err, "run %s", u.Name)
	}

	samples := make([]Sample, len(values))
	for i, v := range values {
		samples[i] = Sample{Name: prog.Outputs[i], Value: v}
	}

	return samples, nil
}
