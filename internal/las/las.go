// Package las reads LAS 2.0 well-log files into depth-aligned float curves.
// The reader is deliberately tolerant: unknown sections are skipped, short
// data rows are padded with NaN, and null samples (NULL., default -999.25)
// are mapped to NaN so downstream detectors treat them as missing.
package las

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultNull is the null sentinel assumed when the ~Well section carries no
// NULL. entry.
const DefaultNull = -999.25

// Sentinel errors for LAS parsing.
var (
	// ErrNoCurveSection indicates the file has no ~Curve section.
	ErrNoCurveSection = errors.New("las: no curve section")
	// ErrNoCurves indicates the ~Curve section defines no curves.
	ErrNoCurves = errors.New("las: curve section defines no curves")
)

// File is one parsed LAS file. The first defined curve is the depth index;
// all curves share its length.
type File struct {
	// Well is the WELL. entry from the ~Well section, if present.
	Well string

	// Start, Stop and Step are the STRT/STOP/STEP entries, if present.
	Start float64
	Stop  float64
	Step  float64

	// Null is the null sentinel in effect while parsing.
	Null float64

	mnemonics []string
	curves    map[string][]float64
}

// Open reads and parses the LAS file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open las file: %w", err)
	}
	defer f.Close()

	parsed, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return parsed, nil
}

// Read parses LAS content from r.
func Read(r io.Reader) (*File, error) {
	file := &File{
		Null:   DefaultNull,
		curves: make(map[string][]float64),
	}

	var (
		section    byte
		sawCurves  bool
		rowBacklog []float64
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "~") {
			section = sectionKind(line)
			if section == 'C' {
				sawCurves = true
			}

			continue
		}

		switch section {
		case 'W':
			file.applyWellEntry(parseEntry(line))
		case 'C':
			mnem, _, _ := parseEntry(line)
			if mnem != "" {
				mnem = file.uniqueMnemonic(mnem)
				file.mnemonics = append(file.mnemonics, mnem)
				file.curves[mnem] = nil
			}
		case 'A':
			rowBacklog = file.appendData(rowBacklog, line)
		default:
			// ~V, ~P, ~O and unknown sections carry nothing we need.
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read las: %w", err)
	}

	if !sawCurves {
		return nil, ErrNoCurveSection
	}

	if len(file.mnemonics) == 0 {
		return nil, ErrNoCurves
	}

	file.flushRow(rowBacklog)

	return file, nil
}

// Len returns the number of depth samples.
func (f *File) Len() int {
	return len(f.curves[f.mnemonics[0]])
}

// Mnemonics returns the curve mnemonics in file order. The returned slice is
// shared; callers must not modify it.
func (f *File) Mnemonics() []string {
	return f.mnemonics
}

// Curve returns the samples for a mnemonic, aligned to the depth index.
// The second result reports whether the curve exists.
func (f *File) Curve(mnemonic string) ([]float64, bool) {
	samples, ok := f.curves[mnemonic]

	return samples, ok
}

// Depths returns the depth index (the first defined curve).
func (f *File) Depths() []float64 {
	return f.curves[f.mnemonics[0]]
}

// sectionKind maps a "~Section" header line to its single-letter kind.
func sectionKind(line string) byte {
	rest := strings.TrimPrefix(line, "~")
	if rest == "" {
		return 0
	}

	return strings.ToUpper(rest[:1])[0]
}

// parseEntry splits a "MNEM.UNIT  DATA : DESCRIPTION" header line.
func parseEntry(line string) (mnem, data, description string) {
	dot := strings.Index(line, ".")
	if dot < 0 {
		return "", "", ""
	}

	mnem = strings.TrimSpace(line[:dot])
	rest := line[dot+1:]

	// The unit runs from the dot to the first whitespace.
	unitEnd := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
	if unitEnd >= 0 {
		rest = rest[unitEnd:]
	} else {
		rest = ""
	}

	// Description follows the last colon; everything before it is data.
	colon := strings.LastIndex(rest, ":")
	if colon >= 0 {
		description = strings.TrimSpace(rest[colon+1:])
		rest = rest[:colon]
	}

	return mnem, strings.TrimSpace(rest), description
}

func (f *File) applyWellEntry(mnem, data, _ string) {
	switch strings.ToUpper(mnem) {
	case "WELL":
		f.Well = data
	case "NULL":
		if v, err := strconv.ParseFloat(data, 64); err == nil {
			f.Null = v
		}
	case "STRT":
		f.Start, _ = strconv.ParseFloat(data, 64)
	case "STOP":
		f.Stop, _ = strconv.ParseFloat(data, 64)
	case "STEP":
		f.Step, _ = strconv.ParseFloat(data, 64)
	}
}

// uniqueMnemonic disambiguates repeated curve names by occurrence, so a file
// declaring GR twice yields GR and GR:2 with row data staying aligned.
func (f *File) uniqueMnemonic(mnem string) string {
	if _, exists := f.curves[mnem]; !exists {
		return mnem
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s:%d", mnem, n)
		if _, exists := f.curves[candidate]; !exists {
			return candidate
		}
	}
}

// appendData consumes one ~ASCII line, emitting complete rows. Values beyond
// a full row spill into the backlog, which handles wrapped (WRAP. YES) files.
func (f *File) appendData(backlog []float64, line string) []float64 {
	for _, field := range strings.Fields(line) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			v = nan()
		}

		if v == f.Null {
			v = nan()
		}

		backlog = append(backlog, v)

		if len(backlog) == len(f.mnemonics) {
			f.flushRow(backlog)
			backlog = backlog[:0]
		}
	}

	return backlog
}

// flushRow appends one data row, padding short rows with NaN.
func (f *File) flushRow(row []float64) {
	if len(row) == 0 {
		return
	}

	for i, mnem := range f.mnemonics {
		v := nan()
		if i < len(row) {
			v = row[i]
		}

		f.curves[mnem] = append(f.curves[mnem], v)
	}
}

func nan() float64 {
	return math.NaN()
}
