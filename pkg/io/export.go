package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

type result struct {
	ProjectPath   *string `json:"project_path,omitempty"`
	Configuration string  `json:"configuration"`
	Edges         []edge  `json:"edges"`
}

type edge struct {
	Requested string `json:"requested"`
	Selected  string `json:"selected,omitempty"`
	From      string `json:"from,omitempty"`
}

// WriteJSON encodes a resolution result as JSON and writes it to w.
// "project_path" is omitted when the result does not name a project.
// The output can be re-imported with [ReadJSON].
func WriteJSON(res *resolution.Result, w io.Writer) error {
	out := result{
		Configuration: res.Target.Configuration,
		Edges:         make([]edge, len(res.Edges)),
	}
	if res.ProjectNamed || res.Target.ProjectPath != "" {
		path := res.Target.ProjectPath
		out.ProjectPath = &path
	}
	for i, e := range res.Edges {
		var ed edge
		if e.Requested != nil {
			ed.Requested = e.Requested.DisplayName()
		}
		ed.Selected = moduleString(e.Selected)
		ed.From = moduleString(e.From)
		out.Edges[i] = ed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a resolution result to a JSON file at path.
func ExportJSON(res *resolution.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}

func moduleString(m *coordinate.ModuleVersion) string {
	if m == nil {
		return ""
	}
	return m.String()
}
