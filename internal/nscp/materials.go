package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Unit weight of normal-weight concrete used for Ec (Section 419.2.2.1)
	ConcreteUnitWeight = 2400.0 // kg/m³

	// Density of reinforcing and structural steel
	SteelDensity = 7850.0 // kg/m³
)

// ConcreteModulus calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1: Ec = 4700√f'c (MPa)
func ConcreteModulus(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return 4700 * math.Sqrt(fc)
}

// MPaToPa converts a stress or modulus from MPa to Pa
func MPaToPa(v float64) float64 {
	return v * 1e6
}
