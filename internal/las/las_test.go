package las_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/wellfang/internal/las"
)

const sampleLAS = `~Version Information
 VERS.                 2.0 : CWLS log ASCII Standard
 WRAP.                  NO : One line per depth step
~Well Information
 STRT.M           1670.000 : START DEPTH
 STOP.M           1670.750 : STOP DEPTH
 STEP.M              0.250 : STEP
 NULL.            -999.25  : NULL VALUE
 WELL.     ANY ET AL OIL WELL #12 : WELL
~Curve Information
 DEPT.M                    : 1  DEPTH
 GR  .GAPI                 : 2  GAMMA RAY
 DEN .G/CM3                : 3  BULK DENSITY
~Parameter Information
 BHT .DEGC          35.5   : BOTTOM HOLE TEMPERATURE
~Other
 Note: synthetic fixture
~ASCII
 1670.000   123.450   2.550
 1670.250  -999.25    2.600
 1670.500   115.200  -999.25
 1670.750   118.900   2.580
`

func TestRead_BasicFile(t *testing.T) {
	t.Parallel()

	f, err := las.Read(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	assert.Equal(t, "ANY ET AL OIL WELL #12", f.Well)
	assert.InDelta(t, 1670.0, f.Start, 1e-9)
	assert.InDelta(t, 1670.75, f.Stop, 1e-9)
	assert.InDelta(t, 0.25, f.Step, 1e-9)
	assert.InDelta(t, las.DefaultNull, f.Null, 1e-9)

	assert.Equal(t, []string{"DEPT", "GR", "DEN"}, f.Mnemonics())
	assert.Equal(t, 4, f.Len())
}

func TestRead_NullBecomesNaN(t *testing.T) {
	t.Parallel()

	f, err := las.Read(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	gr, ok := f.Curve("GR")
	require.True(t, ok)
	require.Len(t, gr, 4)

	assert.InDelta(t, 123.45, gr[0], 1e-9)
	assert.True(t, math.IsNaN(gr[1]), "null sample maps to NaN")

	den, ok := f.Curve("DEN")
	require.True(t, ok)
	assert.True(t, math.IsNaN(den[2]))
}

func TestRead_DepthsIsFirstCurve(t *testing.T) {
	t.Parallel()

	f, err := las.Read(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	depths := f.Depths()
	require.Len(t, depths, 4)
	assert.InDelta(t, 1670.0, depths[0], 1e-9)
	assert.InDelta(t, 1670.75, depths[3], 1e-9)
}

func TestRead_MissingCurveLookup(t *testing.T) {
	t.Parallel()

	f, err := las.Read(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	_, ok := f.Curve("NPHI")
	assert.False(t, ok)
}

func TestRead_WrappedDataRows(t *testing.T) {
	t.Parallel()

	// WRAP. YES style: one row split across two physical lines.
	wrapped := `~C
 DEPT.M :
 GR.GAPI :
 DEN.G/CM3 :
~A
 100.0 50.0
 2.5
 100.5 52.0 2.6
`

	f, err := las.Read(strings.NewReader(wrapped))
	require.NoError(t, err)

	require.Equal(t, 2, f.Len())

	den, _ := f.Curve("DEN")
	assert.InDelta(t, 2.5, den[0], 1e-9)
	assert.InDelta(t, 2.6, den[1], 1e-9)
}

func TestRead_ShortFinalRowPadsNaN(t *testing.T) {
	t.Parallel()

	truncated := `~C
 DEPT.M :
 GR.GAPI :
~A
 100.0 50.0
 100.5
`

	f, err := las.Read(strings.NewReader(truncated))
	require.NoError(t, err)

	require.Equal(t, 2, f.Len())

	gr, _ := f.Curve("GR")
	assert.True(t, math.IsNaN(gr[1]))
}

func TestRead_NoCurveSection(t *testing.T) {
	t.Parallel()

	_, err := las.Read(strings.NewReader("~Well\n NULL. -999.25 :\n"))
	require.ErrorIs(t, err, las.ErrNoCurveSection)
}

func TestRead_EmptyCurveSection(t *testing.T) {
	t.Parallel()

	_, err := las.Read(strings.NewReader("~Curve\n~ASCII\n"))
	require.ErrorIs(t, err, las.ErrNoCurves)
}

func TestRead_CustomNull(t *testing.T) {
	t.Parallel()

	content := `~W
 NULL.  -9999 :
~C
 DEPT.M :
 GR.GAPI :
~A
 100.0 -9999
`

	f, err := las.Read(strings.NewReader(content))
	require.NoError(t, err)

	gr, _ := f.Curve("GR")
	require.Len(t, gr, 1)
	assert.True(t, math.IsNaN(gr[0]))
}

func TestRead_DuplicateMnemonicsKeepRowAlignment(t *testing.T) {
	t.Parallel()

	const src = `~Version
 VERS.          2.0 : CWLS log ASCII standard
~Curve
 DEPT.M             : depth
 GR  .GAPI          : gamma ray, run one
 GR  .GAPI          : gamma ray, run two
~ASCII
 1500.0    10.0    20.0
 1500.5    11.0    21.0
`

	f, err := las.Read(strings.NewReader(src))
	require.NoError(t, err)

	// The second GR column gets an occurrence suffix instead of clobbering
	// the first, keeping one data slice per declared curve.
	assert.Equal(t, []string{"DEPT", "GR", "GR:2"}, f.Mnemonics())

	first, ok := f.Curve("GR")
	require.True(t, ok)
	assert.Equal(t, []float64{10.0, 11.0}, first)

	second, ok := f.Curve("GR:2")
	require.True(t, ok)
	assert.Equal(t, []float64{20.0, 21.0}, second)
}

func TestRead_CommentsAndUnknownSectionsIgnored(t *testing.T) {
	t.Parallel()

	content := `# header comment
~Curve
 DEPT.M :
# inline comment
 GR.GAPI :
~Xunknown
 junk that is not data
~ASCII
 100.0 42.0
`

	f, err := las.Read(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := las.Open("/nonexistent/path.las")
	require.Error(t, err)
}
