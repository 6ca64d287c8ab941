package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/region"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestRuns(t *testing.T) {
	s := newTestStore(t)

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	first, err := s.SaveRun("Shapes", "shapes.yaml")
	require.NoError(t, err)
	second, err := s.SaveRun("Shapes", "shapes.yaml")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	latest, err = s.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, latest.ID)
	assert.Equal(t, "Shapes", latest.Module)

	got, err := s.Run(first)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "shapes.yaml", got.File)

	missing, err := s.Run(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDiagnosticsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	runID, err := s.SaveRun("Shapes", "shapes.yaml")
	require.NoError(t, err)

	shadow := diagnostics.NewError(diagnostics.ErrC001, region.New(4, 5), "x").WithOriginal(region.New(0, 1))
	shadow.File = "shapes.yaml"
	lit := diagnostics.NewError(diagnostics.ErrC003, region.New(9, 12), "int")
	lit.File = "shapes.yaml"

	require.NoError(t, s.SaveDiagnostics(runID, "point", []*diagnostics.DiagnosticError{shadow}))
	require.NoError(t, s.SaveDiagnostics(runID, "lit", []*diagnostics.DiagnosticError{lit}))

	ds, err := s.Diagnostics(runID)
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, "point", ds[0].Case)
	assert.Equal(t, "C001", ds[0].Code)
	assert.Equal(t, "error", ds[0].Severity)
	assert.Equal(t, uint32(4), ds[0].Start)
	assert.Equal(t, uint32(5), ds[0].End)
	assert.Equal(t, "x shadows an existing binding", ds[0].Message)
	require.NotNil(t, ds[0].OriginalStart)
	assert.Equal(t, uint32(0), *ds[0].OriginalStart)
	assert.Equal(t, uint32(1), *ds[0].OriginalEnd)

	assert.Equal(t, "C003", ds[1].Code)
	assert.Nil(t, ds[1].OriginalStart)

	counts, err := s.CountByCode(runID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C001": 1, "C003": 1}, counts)
}

func TestDiagnosticsRequireRun(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveDiagnostics(42, "x", []*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrC009, region.New(0, 1)),
	})
	assert.Error(t, err, "foreign keys are enforced")
}

func TestBindingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	runID, err := s.SaveRun("Shapes", "shapes.yaml")
	require.NoError(t, err)

	require.NoError(t, s.SaveBindings(runID, "point", []Binding{
		{Name: "x", Symbol: "a1b2c3d4.3", Start: 1, End: 2},
		{Name: "y", Symbol: "a1b2c3d4.4", Start: 4, End: 5},
	}))

	bs, err := s.Bindings(runID)
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, 0, bs[0].Ordinal)
	assert.Equal(t, "x", bs[0].Name)
	assert.Equal(t, 1, bs[1].Ordinal)
	assert.Equal(t, "a1b2c3d4.4", bs[1].Symbol)
	assert.Equal(t, uint32(4), bs[1].Start)
}

func TestRendererPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	assert.False(t, r.Color(), "buffers are never terminals")

	shadow := diagnostics.NewError(diagnostics.ErrC001, region.New(4, 5), "x").WithOriginal(region.New(0, 1))
	shadow.File = "shapes.yaml"
	require.NoError(t, r.Diagnostics([]*diagnostics.DiagnosticError{shadow}))

	assert.Equal(t,
		"shapes.yaml@4-5 error[C001]: x shadows an existing binding (shadowing) first bound at @0-1\n1 problem\n",
		buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRendererStored(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)
	require.NoError(t, r.Stored([]*Diagnostic{
		{Case: "lit", Code: "C003", Severity: "error", File: "u.yaml", Start: 9, End: 12, Message: "malformed int literal"},
	}))
	assert.Equal(t, "u.yaml@9-12 error[C003]: malformed int literal [lit]\n1 problem\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Stored(nil))
	assert.Equal(t, "no problems\n", buf.String())
}

func TestRendererColors(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{w: &buf, color: true}
	require.NoError(t, r.Summary(3))
	assert.Equal(t, ansiBold+"3 problems"+ansiReset+"\n", buf.String())
}
