package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/model"
	"gonum.org/v1/gonum/mat"
)

const (
	banner = "═══════════════════════════════════════════════════════════════"
	rule   = "───────────────────────────────────────────────────────────────"
)

func printHeader(title string) {
	fmt.Println()
	fmt.Println(banner)
	pad := (len([]rune(banner)) - len([]rune(title))) / 2
	fmt.Printf("%s%s\n", strings.Repeat(" ", max(pad, 0)), title)
	fmt.Println(banner)
	fmt.Println()
}

func printModelInfo(m *model.Model, elements, dofs int) {
	if m.Name != "" {
		fmt.Printf("  Model: %s\n", m.Name)
	}
	if m.Description != "" {
		fmt.Printf("  Description: %s\n", m.Description)
	}
	fmt.Println()

	fmt.Println("MODEL:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Element type:\t%s\n", m.ElementType)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(m.Nodes))
	fmt.Fprintf(w, "  Elements:\t%d\n", elements)
	fmt.Fprintf(w, "  Free DOFs:\t%d\n", dofs)
	w.Flush()
	fmt.Println()
}

// printIssues lists elements that were left out of the assembly
func printIssues(err error) {
	if err == nil {
		return
	}
	fmt.Println("SKIPPED ELEMENTS:")
	fmt.Println(rule)
	mismatches := dof.Mismatches(err)
	if len(mismatches) == 0 {
		for _, line := range strings.Split(strings.TrimSpace(err.Error()), "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Element\tLocal DOFs\tFree DOFs\t\n")
	fmt.Fprintf(w, "  ───────\t──────────\t─────────\t\n")
	for _, m := range mismatches {
		fmt.Fprintf(w, "  %d\t%d\t%d\t\n", m.ElementID, m.Expected, m.Actual)
	}
	w.Flush()
	fmt.Println()
}

func printMatrix(title string, m mat.Matrix) {
	fmt.Println(title)
	fmt.Println(rule)
	fmt.Printf("%v\n\n", mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
}

func maxAbs(v []float64) float64 {
	peak := 0.0
	for _, x := range v {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// writeFile creates path and passes it to write, closing it afterwards
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
