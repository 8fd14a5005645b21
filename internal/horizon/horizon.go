// Package horizon loads geological horizon markers from CSV files. A marker
// ties a named surface to a measured depth in one well; the plot layer draws
// them as labeled depth lines across all tracks.
package horizon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Required CSV column headers. Extra columns are ignored.
const (
	columnWell    = "Well"
	columnMD      = "MD"
	columnSurface = "Surface"
)

// Sentinel errors for horizon loading.
var (
	// ErrMissingColumns indicates the CSV header lacks Well, MD or Surface.
	ErrMissingColumns = errors.New("horizon: header must contain Well, MD and Surface columns")
)

// Marker is one horizon pick: surface name at measured depth within a well.
type Marker struct {
	Well    string
	MD      float64
	Surface string
}

// Set holds every loaded marker, queryable per well.
type Set struct {
	markers []Marker
}

// Open reads and parses the horizon CSV at path.
func Open(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open horizon file: %w", err)
	}
	defer f.Close()

	set, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return set, nil
}

// Read parses horizon CSV content from r. Rows with an unparsable depth are
// skipped rather than failing the whole file.
func Read(r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("horizon: read header: %w", err)
	}

	wellIdx, mdIdx, surfaceIdx := -1, -1, -1

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnWell:
			wellIdx = i
		case columnMD:
			mdIdx = i
		case columnSurface:
			surfaceIdx = i
		}
	}

	if wellIdx < 0 || mdIdx < 0 || surfaceIdx < 0 {
		return nil, ErrMissingColumns
	}

	set := &Set{}

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("horizon: read row: %w", readErr)
		}

		if len(record) <= wellIdx || len(record) <= mdIdx || len(record) <= surfaceIdx {
			continue
		}

		md, parseErr := strconv.ParseFloat(strings.TrimSpace(record[mdIdx]), 64)
		if parseErr != nil {
			continue
		}

		set.markers = append(set.markers, Marker{
			Well:    strings.TrimSpace(record[wellIdx]),
			MD:      md,
			Surface: strings.TrimSpace(record[surfaceIdx]),
		})
	}

	return set, nil
}

// Len returns the total number of markers in the set.
func (s *Set) Len() int {
	return len(s.markers)
}

// ForWell returns the markers for one well, sorted by measured depth.
// An unknown well yields an empty slice; the caller plots without overlay.
func (s *Set) ForWell(well string) []Marker {
	var markers []Marker

	for _, m := range s.markers {
		if m.Well == well {
			markers = append(markers, m)
		}
	}

	sort.Slice(markers, func(i, j int) bool { return markers[i].MD < markers[j].MD })

	return markers
}

// Wells returns the distinct well names present in the set, sorted.
func (s *Set) Wells() []string {
	seen := make(map[string]bool)

	var wells []string

	for _, m := range s.markers {
		if !seen[m.Well] {
			seen[m.Well] = true

			wells = append(wells, m.Well)
		}
	}

	sort.Strings(wells)

	return wells
}
