// Package material holds the library of elastic materials members can
// reference by name.
package material

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gostiff/internal/nscp"
)

// Material is a linear-elastic isotropic material
type Material struct {
	Name        string  `json:"name"`
	E           float64 `json:"e"`       // Young's modulus (Pa)
	Density     float64 `json:"density"` // kg/m³
	Description string  `json:"description,omitempty"`
}

// Library maps material names to their properties
type Library map[string]Material

// Aerospace is the built-in library of structural alloys and composites
var Aerospace = Library{
	"Aluminio 6061-T6":      {Name: "Aluminio 6061-T6", E: 68.9e9, Density: 2700, Description: "Common structural aluminium alloy"},
	"Aluminio 7075-T6":      {Name: "Aluminio 7075-T6", E: 71.7e9, Density: 2810, Description: "High-strength aluminium alloy"},
	"Aluminio 2024-T3":      {Name: "Aluminio 2024-T3", E: 73.1e9, Density: 2780, Description: "Fuselage aluminium alloy"},
	"Titanio Ti-6Al-4V":     {Name: "Titanio Ti-6Al-4V", E: 113.8e9, Density: 4430, Description: "Aerospace titanium alloy"},
	"Acero 4130":            {Name: "Acero 4130", E: 205e9, Density: 7850, Description: "Alloy steel for structures"},
	"Fibra de Carbono T300": {Name: "Fibra de Carbono T300", E: 230e9, Density: 1760, Description: "Carbon fibre composite"},
	"Magnesio AZ31B":        {Name: "Magnesio AZ31B", E: 45e9, Density: 1770, Description: "Light magnesium alloy"},
}

// Default returns the built-in library extended with NSCP steel and
// concrete (f'c = 21, 28 and 35 MPa).
func Default() Library {
	lib := make(Library, len(Aerospace)+4)
	for name, m := range Aerospace {
		lib[name] = m
	}
	lib.Add(Material{Name: "NSCP Steel", E: nscp.MPaToPa(nscp.Es), Density: nscp.SteelDensity, Description: "Es = 200 GPa"})
	for _, fc := range []float64{21, 28, 35} {
		lib.Add(Concrete(fc))
	}
	return lib
}

// Concrete returns a normal-weight concrete with Ec per NSCP 2015
func Concrete(fc float64) Material {
	return Material{
		Name:        fmt.Sprintf("Concrete fc=%g", fc),
		E:           nscp.MPaToPa(nscp.ConcreteModulus(fc)),
		Density:     nscp.ConcreteUnitWeight,
		Description: fmt.Sprintf("Ec = 4700√%g MPa", fc),
	}
}

// Add registers or replaces a material
func (l Library) Add(m Material) {
	l[m.Name] = m
}

// Get looks up a material by name
func (l Library) Get(name string) (Material, error) {
	m, ok := l[name]
	if !ok {
		return Material{}, fmt.Errorf("unknown material %q", name)
	}
	return m, nil
}

// Names returns the material names sorted alphabetically
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
