package material_test

import (
	"testing"

	"github.com/alexiusacademia/gostiff/internal/material"
)

func TestDefaultLibrary(t *testing.T) {
	lib := material.Default()

	al, err := lib.Get("Aluminio 6061-T6")
	if err != nil {
		t.Fatal(err)
	}
	if al.E != 68.9e9 || al.Density != 2700 {
		t.Fatalf("unexpected aluminium properties: %+v", al)
	}

	steel, err := lib.Get("NSCP Steel")
	if err != nil {
		t.Fatal(err)
	}
	if steel.E != 200e9 {
		t.Fatalf("steel E = %g", steel.E)
	}

	if _, err := lib.Get("Unobtainium"); err == nil {
		t.Fatal("expected error for unknown material")
	}

	names := lib.Names()
	if len(names) != len(material.Aerospace)+4 {
		t.Fatalf("got %d materials", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestDefaultDoesNotMutateAerospace(t *testing.T) {
	lib := material.Default()
	lib.Add(material.Material{Name: "Custom", E: 1, Density: 1})
	if _, ok := material.Aerospace["Custom"]; ok {
		t.Fatal("Default must copy the built-in library")
	}
}
