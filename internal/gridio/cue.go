package gridio

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// decodeCUE evaluates a single CUE file and decodes its rows field.
func decodeCUE(name string, data []byte) ([][]string, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, cueError(name, err)
	}

	rowsVal := v.LookupPath(cue.ParsePath("rows"))
	if !rowsVal.Exists() {
		return nil, &FormatError{Path: name, Message: "missing rows field"}
	}
	if err := rowsVal.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(name, err)
	}

	var cells [][]string
	if err := rowsVal.Decode(&cells); err != nil {
		return nil, cueError(name, err)
	}
	return cells, nil
}

func cueError(name string, err error) error {
	fe := &FormatError{Path: name, Message: errors.Details(err, nil)}
	if positions := errors.Positions(err); len(positions) > 0 {
		fe.Pos = positions[0]
	}
	return fe
}
