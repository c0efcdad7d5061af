package segment

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// ErrNoInput is returned when none of the given paths contain GeoJSON files.
var ErrNoInput = errors.New("no .geojson files found")

// requiredProperties must all be present on a feature for it to become a Record.
var requiredProperties = []string{"ST_NAME", "Width", "CurLoad", "Control", "CrossRoad"}

// LoadResult is the outcome of loading one or more GeoJSON files.
type LoadResult struct {
	Records []Record
	Files   []string
	Skipped int // features rejected for missing or malformed properties
}

// Loader reads road segments from GeoJSON feature collections.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger discards diagnostics.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// LoadPaths loads every .geojson file under the given paths. Directories are
// walked recursively; files are taken as-is regardless of extension.
func (l *Loader) LoadPaths(paths ...string) (*LoadResult, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}

	result := &LoadResult{}
	for _, f := range files {
		fr, err := l.LoadFile(f)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, fr.Records...)
		result.Files = append(result.Files, f)
		result.Skipped += fr.Skipped
	}
	return result, nil
}

// LoadFile loads a single GeoJSON FeatureCollection.
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	result := &LoadResult{Files: []string{path}}
	for i, f := range fc.Features {
		rec, err := recordFromFeature(f)
		if err != nil {
			l.logger.Debug("skipping feature", "file", path, "index", i, "error", err)
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	l.logger.Debug("loaded geojson", "file", path, "records", len(result.Records), "skipped", result.Skipped)
	return result, nil
}

func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading input %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".geojson") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func recordFromFeature(f *geojson.Feature) (Record, error) {
	props := f.Properties
	for _, key := range requiredProperties {
		if _, ok := props[key]; !ok {
			return Record{}, fmt.Errorf("missing property %s", key)
		}
	}

	width, err := numberProperty(props, "Width")
	if err != nil {
		return Record{}, err
	}
	load, err := numberProperty(props, "CurLoad")
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Name:         fmt.Sprint(props["ST_NAME"]),
		WidthMeters:  width,
		CurrentLoad:  load,
		IsControlled: flagProperty(props["Control"]),
		IsCrossroad:  flagProperty(props["CrossRoad"]),
		Geometry:     f.Geometry,
	}

	if _, ok := props["PredictiveLoad"]; ok {
		pred, err := numberProperty(props, "PredictiveLoad")
		if err != nil {
			return Record{}, err
		}
		rec.PredictiveLoad = &pred
	}
	if v, ok := props["WeatherImpact"]; ok {
		w, err := ParseWeather(fmt.Sprint(v))
		if err != nil {
			return Record{}, err
		}
		rec.Weather = w
	}
	if v, ok := props["RoadClass"]; ok {
		rec.Class = ParseRoadClass(fmt.Sprint(v))
	} else if v, ok := props["highway"]; ok {
		rec.Class = ParseRoadClass(fmt.Sprint(v))
	}

	if f.Geometry != nil {
		rec.LengthMeters = geo.Length(f.Geometry)
	}

	return rec, nil
}

// numberProperty reads a property that may be a JSON number or a numeric string.
func numberProperty(props geojson.Properties, key string) (float64, error) {
	switch v := props[key].(type) {
	case float64:
		return v, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("property %s: %w", key, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("property %s is null", key)
	default:
		return 0, fmt.Errorf("property %s has unsupported type %T", key, v)
	}
}

// flagProperty accepts "1"/"0" strings, numbers and JSON booleans.
func flagProperty(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "1" || s == "true"
	default:
		return false
	}
}
