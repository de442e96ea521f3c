// Package table implements resistance/temperature lookup tables for NTC
// thermistors with linear interpolation between entries.
//
// A Table is immutable once built and safe for concurrent readers.
package table

import (
	"fmt"
	"math"

	"github.com/itohio/gontc/pkg/ntc"
)

// Entry is a single calibration point of a thermistor.
type Entry struct {
	Resistance  float64 `yaml:"resistance"`  // ohms
	Temperature float64 `yaml:"temperature"` // °C
}

// Table holds entries sorted by strictly decreasing resistance and increasing
// temperature with a fixed temperature step.
type Table struct {
	name    string
	entries []Entry

	minResistance  float64
	maxResistance  float64
	minTemperature float64
	maxTemperature float64
	step           float64
}

// Stats summarizes a table.
type Stats struct {
	Name              string
	Entries           int
	MinResistance     float64
	MaxResistance     float64
	MinTemperature    float64
	MaxTemperature    float64
	TemperatureStep   float64
	MaxResistanceStep float64 // largest gap between adjacent resistances
}

// New validates entries and builds a table. The slice is copied.
func New(name string, entries []Entry) (*Table, error) {
	t := &Table{
		name:    name,
		entries: append([]Entry(nil), entries...),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	first, last := t.entries[0], t.entries[len(t.entries)-1]
	t.maxResistance = first.Resistance
	t.minResistance = last.Resistance
	t.minTemperature = first.Temperature
	t.maxTemperature = last.Temperature
	t.step = t.entries[1].Temperature - first.Temperature

	return t, nil
}

// Validate checks the table invariants.
func (t *Table) Validate() error {
	const op = "validate table"
	if len(t.entries) < 2 {
		return ntc.Wrap(ntc.LookupTableError, op, fmt.Errorf("%q needs at least 2 entries, got %d", t.name, len(t.entries)))
	}

	step := t.entries[1].Temperature - t.entries[0].Temperature
	if step <= 0 {
		return ntc.Wrap(ntc.LookupTableError, op, fmt.Errorf("%q: temperatures must increase", t.name))
	}
	for i := 1; i < len(t.entries); i++ {
		prev, cur := t.entries[i-1], t.entries[i]
		if cur.Resistance >= prev.Resistance {
			return ntc.Wrap(ntc.LookupTableError, op, fmt.Errorf("%q: resistance not decreasing at entry %d", t.name, i))
		}
		if math.Abs(cur.Temperature-prev.Temperature-step) > ntc.Epsilon {
			return ntc.Wrap(ntc.LookupTableError, op, fmt.Errorf("%q: uneven temperature step at entry %d", t.name, i))
		}
	}
	return nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Stats returns the table ranges.
func (t *Table) Stats() Stats {
	s := Stats{
		Name:            t.name,
		Entries:         len(t.entries),
		MinResistance:   t.minResistance,
		MaxResistance:   t.maxResistance,
		MinTemperature:  t.minTemperature,
		MaxTemperature:  t.maxTemperature,
		TemperatureStep: t.step,
	}
	for i := 1; i < len(t.entries); i++ {
		s.MaxResistanceStep = math.Max(s.MaxResistanceStep, t.entries[i-1].Resistance-t.entries[i].Resistance)
	}
	return s
}

// TemperatureFromResistance interpolates the temperature in °C for resistance r.
func (t *Table) TemperatureFromResistance(r float64) (float64, error) {
	const op = "table temperature"
	if !ntc.ValidateResistance(r, t.minResistance, t.maxResistance) {
		return 0, ntc.Wrap(ntc.InvalidResistance, op, fmt.Errorf("%.3f Ω outside [%.3f, %.3f]", r, t.minResistance, t.maxResistance))
	}

	lo, hi := t.bracket(r)
	a, b := t.entries[lo], t.entries[hi]
	return Interpolate(r, a.Resistance, b.Resistance, a.Temperature, b.Temperature), nil
}

// ResistanceFromTemperature interpolates the resistance for temperature c in °C.
func (t *Table) ResistanceFromTemperature(c float64) (float64, error) {
	const op = "table resistance"
	if !ntc.ValidateTemperature(c, t.minTemperature, t.maxTemperature) {
		return 0, ntc.Wrap(ntc.TemperatureOutOfRange, op, fmt.Errorf("%.3f °C outside [%.3f, %.3f]", c, t.minTemperature, t.maxTemperature))
	}

	for i := 0; i < len(t.entries)-1; i++ {
		a, b := t.entries[i], t.entries[i+1]
		if c >= a.Temperature && c <= b.Temperature {
			return Interpolate(c, a.Temperature, b.Temperature, a.Resistance, b.Resistance), nil
		}
	}
	return 0, ntc.NewError(ntc.LookupTableError, op)
}

// bracket binary searches the descending resistances for the pair surrounding r.
// An exact match returns the same index twice.
func (t *Table) bracket(r float64) (int, int) {
	n := len(t.entries)
	left, right := 0, n-1
	for left <= right {
		mid := left + (right-left)/2
		mr := t.entries[mid].Resistance
		if math.Abs(mr-r) < ntc.Epsilon {
			return mid, mid
		}
		if mr > r {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}

	switch {
	case right >= n-1:
		return n - 2, n - 1
	case left == 0:
		return 0, 1
	default:
		return right, left
	}
}

// Interpolate maps x from [x0, x1] onto [y0, y1]. A degenerate interval yields y0.
func Interpolate(x, x0, x1, y0, y1 float64) float64 {
	d := x1 - x0
	if math.Abs(d) < ntc.Epsilon {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/d
}
