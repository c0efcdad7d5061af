// Package surface defines output rendering for trafficscope analysis runs.
// Implementations handle different output targets: terminal, JSON, markdown,
// an HTML analysis panel and a CSV table.
package surface

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/trafficscope/trafficscope/pkg/recommend"
)

// Renderer produces formatted output from an analysis run.
type Renderer interface {
	// Render writes the formatted run to the writer.
	Render(w io.Writer, run *recommend.Run) error
}

// Format describes a named output format.
type Format struct {
	Name        string
	Extension   string
	ContentType string
	New         func() Renderer
}

var formats = map[string]Format{
	"terminal": {"terminal", ".txt", "text/plain; charset=utf-8", func() Renderer { return &TerminalRenderer{} }},
	"json":     {"json", ".json", "application/json", func() Renderer { return &JSONRenderer{} }},
	"markdown": {"markdown", ".md", "text/markdown; charset=utf-8", func() Renderer { return &MarkdownRenderer{} }},
	"html":     {"html", ".html", "text/html; charset=utf-8", func() Renderer { return &HTMLRenderer{} }},
	"csv":      {"csv", ".csv", "text/csv; charset=utf-8", func() Renderer { return &CSVRenderer{} }},
}

// LookupFormat returns the format registered under name.
func LookupFormat(name string) (Format, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// ForFormat returns a renderer for the named format.
func ForFormat(name string) (Renderer, error) {
	f, err := LookupFormat(name)
	if err != nil {
		return nil, err
	}
	return f.New(), nil
}

// FormatNames lists the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
