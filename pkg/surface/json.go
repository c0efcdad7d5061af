package surface

import (
	"encoding/json"
	"io"

	"github.com/trafficscope/trafficscope/pkg/recommend"
)

// JSONRenderer marshals a run and its summary to indented JSON.
type JSONRenderer struct{}

type jsonRun struct {
	*recommend.Run
	Summary recommend.Summary `json:"summary"`
}

func (r *JSONRenderer) Render(w io.Writer, run *recommend.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonRun{Run: run, Summary: run.Summary()})
}
