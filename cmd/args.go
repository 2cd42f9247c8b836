package cmd

import (
	"strconv"
	"strings"

	"github.com/jcelerier/faust/unit"

	"tlog.app/go/errors"
)

// parseInputs parses a comma separated list of input values.
func parseInputs(arg string) ([]float64, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}

	fields := strings.Split(arg, ",")
	inputs := make([]float64, len(fields))

	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrap(err, "input %d", i)
		}

		inputs[i] = v
	}

	return inputs, nil
}

// parseParams parses a comma separated list of `name=value` parameter values.
func parseParams(arg string) (map[string]float64, error) {
	params := make(map[string]float64)
	if strings.TrimSpace(arg) == "" {
		return params, nil
	}

	for _, field := range strings.Split(arg, ",") {
		name, value, ok := strings.Cut(field, "=")
		name = strings.TrimSpace(name)

		if !ok || !unit.IsValidIdentifier(name) {
			return nil, errors.New("malformed parameter value `%s`: expected name=value", field)
		}

		if _, ok := params[name]; ok {
			return nil, errors.New("multiple values for parameter `%s`", name)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrap(err, "parameter %s", name)
		}

		params[name] = v
	}

	return params, nil
}
