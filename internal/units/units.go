// Package units formats SI quantities with a readable prefix.
package units

import "fmt"

type step struct {
	below  float64 // upper bound of |v| for this step; 0 means no bound
	factor float64
	format string
}

var (
	pressure = []step{
		{10, 1, "%.3f Pa"},
		{1e3, 1, "%.1f Pa"},
		{1e6, 1e-3, "%.3f kPa"},
		{1e9, 1e-6, "%.3f MPa"},
		{0, 1e-9, "%.3f GPa"},
	}
	force = []step{
		{1e3, 1, "%.3f N"},
		{1e6, 1e-3, "%.3f kN"},
		{0, 1e-6, "%.3f MN"},
	}
	length = []step{
		{1e-6, 1e9, "%.3f nm"},
		{1e-3, 1e6, "%.3f μm"},
		{1, 1e3, "%.3f mm"},
		{0, 1, "%.6f m"},
	}
	stiffness = []step{
		{1e-6, 1e9, "%.3f nN/m"},
		{1e-3, 1e6, "%.3f μN/m"},
		{1, 1e3, "%.3f mN/m"},
		{1e3, 1, "%.3f N/m"},
		{1e6, 1e-3, "%.3f kN/m"},
		{1e9, 1e-6, "%.3f MN/m"},
		{0, 1e-9, "%.3f GN/m"},
	}
)

func format(v float64, steps []step, zero string) string {
	if v == 0 {
		return zero
	}
	a := v
	if a < 0 {
		a = -a
	}
	for _, s := range steps {
		if s.below == 0 || a < s.below {
			return fmt.Sprintf(s.format, v*s.factor)
		}
	}
	return fmt.Sprintf("%.6e", v)
}

// Pressure formats a stress or modulus given in Pa
func Pressure(pa float64) string { return format(pa, pressure, "0 Pa") }

// Force formats a force given in N
func Force(n float64) string { return format(n, force, "0 N") }

// Length formats a displacement given in m
func Length(m float64) string { return format(m, length, "0 m") }

// Stiffness formats a stiffness given in N/m
func Stiffness(nm float64) string { return format(nm, stiffness, "0 N/m") }
