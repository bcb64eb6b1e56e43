package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/composecheck/pkg/coordinate"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// ReadJSON decodes a JSON resolution result from r.
//
// A present "project_path", even "", names the project; "" is the root.
// Every edge needs a "requested" selector. "selected" and "from" are
// optional but, when present, must be concrete group:name:version
// coordinates. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*resolution.Result, error) {
	var data result
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidFormat, err, "decode")
	}
	res := &resolution.Result{
		Target: resolution.Target{Configuration: data.Configuration},
		Edges:  make([]resolution.Edge, 0, len(data.Edges)),
	}
	if data.ProjectPath != nil {
		if err := composeerr.ValidateProjectPath(*data.ProjectPath); err != nil {
			return nil, err
		}
		res.Target.ProjectPath = *data.ProjectPath
		res.ProjectNamed = true
	}
	for i, e := range data.Edges {
		edge, err := e.decode()
		if err != nil {
			return nil, composeerr.Wrap(composeerr.ErrCodeInvalidCoordinate, err, "edge %d", i)
		}
		res.Edges = append(res.Edges, edge)
	}
	return res, nil
}

func (e edge) decode() (resolution.Edge, error) {
	req, err := coordinate.ParseSelector(e.Requested)
	if err != nil {
		return resolution.Edge{}, fmt.Errorf("requested: %w", err)
	}
	out := resolution.Edge{Requested: req}
	if out.Selected, err = optionalModule(e.Selected); err != nil {
		return resolution.Edge{}, fmt.Errorf("selected: %w", err)
	}
	if out.From, err = optionalModule(e.From); err != nil {
		return resolution.Edge{}, fmt.Errorf("from: %w", err)
	}
	return out, nil
}

func optionalModule(s string) (*coordinate.ModuleVersion, error) {
	if s == "" {
		return nil, nil
	}
	mv, err := coordinate.ParseModuleVersion(s)
	if err != nil {
		return nil, err
	}
	return &mv, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	cause := err
	var pe *os.PathError
	if errors.As(err, &pe) {
		cause = pe.Err // the message already names path
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, composeerr.Wrap(composeerr.ErrCodeFileNotFound, cause, "open %s", path)
	}
	return nil, composeerr.Wrap(composeerr.ErrCodeInvalidInput, cause, "open %s", path)
}
