package table

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gontc/pkg/ntc"
)

func TestInterpolateBetweenTwoEntries(t *testing.T) {
	tbl, err := New("pair", []Entry{{10.6, 13}, {10.1, 14}})
	require.NoError(t, err)

	got, err := tbl.TemperatureFromResistance(10.35)
	require.NoError(t, err)
	assert.InDelta(t, 13.5, got, 0.01)

	r, err := tbl.ResistanceFromTemperature(13.5)
	require.NoError(t, err)
	assert.InDelta(t, 10.35, r, 1e-9)
}

func TestNewRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "empty", entries: nil},
		{name: "single entry", entries: []Entry{{10000, 25}}},
		{name: "ascending resistance", entries: []Entry{{100, 0}, {200, 1}}},
		{name: "repeated resistance", entries: []Entry{{200, 0}, {200, 1}, {100, 2}}},
		{name: "decreasing temperature", entries: []Entry{{200, 2}, {100, 1}}},
		{name: "uneven step", entries: []Entry{{300, 0}, {200, 1}, {100, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, ntc.ErrLookupTable)
		})
	}
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []Entry{{300, 0}, {200, 1}, {100, 2}}
	tbl, err := New("copy", entries)
	require.NoError(t, err)

	entries[0].Resistance = 1
	assert.Equal(t, 300.0, tbl.Entries()[0].Resistance)
	require.NoError(t, tbl.Validate())
}

func TestBuiltinTable(t *testing.T) {
	tbl := ForType(ntc.TypeNTCG163JFT103FT1S)
	require.NotNil(t, tbl)

	stats := tbl.Stats()
	assert.Equal(t, 166, stats.Entries)
	assert.Equal(t, -40.0, stats.MinTemperature)
	assert.Equal(t, 125.0, stats.MaxTemperature)
	assert.Equal(t, 1.0, stats.TemperatureStep)
	assert.InDelta(t, 553.7, stats.MinResistance, 1e-9)
	assert.InDelta(t, 248276.5, stats.MaxResistance, 1e-9)

	got, err := tbl.TemperatureFromResistance(10000)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, 1e-9)
}

func TestBuiltinTableShared(t *testing.T) {
	a := ForType(ntc.TypeNTCG163JFT103FT1S)
	b := ForType(ntc.TypeNTCG164JF103FT1S)
	c := ForType(ntc.TypeNTCG163JF103FT1S)
	assert.Same(t, a, b)
	assert.Same(t, a, c)

	assert.Nil(t, ForType(ntc.TypeUnknown))
	assert.Nil(t, ForType(ntc.TypeCustom))
}

func TestBuiltinTableAgreesWithBeta(t *testing.T) {
	tbl := ForType(ntc.TypeNTCG163JFT103FT1S)
	require.NotNil(t, tbl)

	for _, r := range []float64{200000, 50000, 12345, 10000, 4000, 1000, 600} {
		want, err := ntc.BetaTemperature(r, 10000, 3435)
		require.NoError(t, err)
		got, err := tbl.TemperatureFromResistance(r)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 0.05, "r=%v", r)
	}
}

func TestBoundaries(t *testing.T) {
	tbl := ForType(ntc.TypeNTCG163JFT103FT1S)
	require.NotNil(t, tbl)
	s := tbl.Stats()

	got, err := tbl.TemperatureFromResistance(s.MaxResistance)
	require.NoError(t, err)
	assert.Equal(t, s.MinTemperature, got)

	got, err = tbl.TemperatureFromResistance(s.MinResistance)
	require.NoError(t, err)
	assert.Equal(t, s.MaxTemperature, got)

	_, err = tbl.TemperatureFromResistance(s.MaxResistance + 1)
	assert.ErrorIs(t, err, ntc.ErrInvalidResistance)
	_, err = tbl.TemperatureFromResistance(s.MinResistance - 1)
	assert.ErrorIs(t, err, ntc.ErrInvalidResistance)

	r, err := tbl.ResistanceFromTemperature(s.MinTemperature)
	require.NoError(t, err)
	assert.InDelta(t, s.MaxResistance, r, 1e-9)
	r, err = tbl.ResistanceFromTemperature(s.MaxTemperature)
	require.NoError(t, err)
	assert.InDelta(t, s.MinResistance, r, 1e-9)

	_, err = tbl.ResistanceFromTemperature(s.MinTemperature - 1)
	assert.ErrorIs(t, err, ntc.ErrTemperatureOutOfRange)
	_, err = tbl.ResistanceFromTemperature(s.MaxTemperature + 1)
	assert.ErrorIs(t, err, ntc.ErrTemperatureOutOfRange)
}

func TestRoundTrip(t *testing.T) {
	tbl := ForType(ntc.TypeNTCG163JFT103FT1S)
	require.NotNil(t, tbl)
	s := tbl.Stats()

	for c := s.MinTemperature; c <= s.MaxTemperature; c += 0.37 {
		r, err := tbl.ResistanceFromTemperature(c)
		require.NoError(t, err)
		back, err := tbl.TemperatureFromResistance(r)
		require.NoError(t, err)
		assert.InDelta(t, c, back, 1e-6)

		again, err := tbl.ResistanceFromTemperature(back)
		require.NoError(t, err)
		assert.InDelta(t, r, again, s.MaxResistanceStep)
	}
}

func TestLoad(t *testing.T) {
	src := `name: custom
entries:
  - {resistance: 3000, temperature: 0}
  - {resistance: 2000, temperature: 10}
  - {resistance: 1000, temperature: 20}
`
	tbl, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "custom", tbl.Name())
	assert.Equal(t, 3, tbl.Len())

	got, err := tbl.TemperatureFromResistance(1500)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got, 1e-9)

	_, err = Load(strings.NewReader("entries: [{resistance: 1, temperature: 0}]"))
	assert.ErrorIs(t, err, ntc.ErrLookupTable)

	_, err = Load(strings.NewReader("entries: {"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "table-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmp.Name())

	_, err = tmp.WriteString("name: file\nentries:\n  - {resistance: 20, temperature: -5}\n  - {resistance: 10, temperature: 5}\n")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	tbl, err := LoadFile(tmp.Name())
	require.NoError(t, err)
	assert.Equal(t, 10.0, tbl.Stats().TemperatureStep)

	_, err = LoadFile(tmp.Name() + ".missing")
	assert.Error(t, err)
}

func TestInterpolateDegenerate(t *testing.T) {
	assert.Equal(t, 7.0, Interpolate(5, 1, 1+1e-9, 7, 9))
	assert.InDelta(t, 8.0, Interpolate(2, 1, 3, 7, 9), 1e-12)
}
