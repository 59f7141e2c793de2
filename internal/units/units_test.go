package units

import "testing"

func TestFormat(t *testing.T) {
	tcs := []struct {
		got, want string
	}{
		{Pressure(0), "0 Pa"},
		{Pressure(2.5), "2.500 Pa"},
		{Pressure(250), "250.0 Pa"},
		{Pressure(68.9e9), "68.900 GPa"},
		{Pressure(-3e6), "-3.000 MPa"},
		{Force(1000), "1.000 kN"},
		{Force(-12.5), "-12.500 N"},
		{Force(2.5e6), "2.500 MN"},
		{Length(1.4514e-4), "145.140 μm"},
		{Length(5e-7), "500.000 nm"},
		{Length(0.02), "20.000 mm"},
		{Length(1.5), "1.500000 m"},
		{Length(0), "0 m"},
		{Stiffness(6.89e6), "6.890 MN/m"},
		{Stiffness(500), "500.000 N/m"},
		{Stiffness(2e10), "20.000 GN/m"},
	}
	for i, tc := range tcs {
		if tc.got != tc.want {
			t.Errorf("case %d: got %q, want %q", i, tc.got, tc.want)
		}
	}
}
