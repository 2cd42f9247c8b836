package cmd

import (
	"strconv"

	"github.com/jcelerier/faust/binop"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

// execOpsCommand executes the ops subcommand: it prints one of the two
// operator tables.
func execOpsCommand(result *olive.ArgParseResult) {
	pterm.DefaultTable.WithHasHeader().WithData(opsTable(result.HasFlag("display"))).Render()
}

// opsTable builds the rows of the operator table.  Every target column shows
// the integer form and the real form separated by a slash.
func opsTable(display bool) pterm.TableData {
	data := pterm.TableData{
		{"Kind", "Symbol", "Priority", "Vector", "Scalar", "LLVM", "Interp", "WASM"},
	}

	for k := binop.Kind(0); int(k) < binop.NumKinds; k++ {
		d := binop.Lookup(k, display)

		llvm := func(real bool) (string, bool) {
			in, ok := d.LLVM(real)
			return in.Name, ok
		}

		interp := func(real bool) (string, bool) {
			op, ok := d.Interp(real)
			return op.String(), ok
		}

		data = append(data, []string{
			k.String(),
			d.Symbol(),
			strconv.Itoa(d.Priority()),
			forms(d.Vector),
			forms(d.Scalar),
			forms(llvm),
			forms(interp),
			forms(d.WASM),
		})
	}

	return data
}

// forms renders the integer and real forms of an operator on one target.
func forms(get func(real bool) (string, bool)) string {
	i, iok := get(false)
	r, rok := get(true)

	switch {
	case !iok && !rok:
		return "-"
	case !rok:
		return i + " / -"
	case !iok:
		return "- / " + r
	case i == r:
		return i
	}

	return i + " / " + r
}
