package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/diagram"
	"github.com/alexiusacademia/gostiff/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	modalFile        string
	modalShowDiagram bool
	modalShowChart   bool
	modalShowMatrix  bool
	modalExportFile  string
	modalXLSXFile    string
	modalPDFFile     string
)

var modalCmd = &cobra.Command{
	Use:   "modal",
	Short: "Compute natural frequencies and mode shapes",
	Long: `Run a free-vibration analysis of the structure defined in a JSON
model file using consistent mass matrices.

Directions listed under "restrained" for a node are held at zero; every
other free DOF takes part in the generalized eigenproblem K·φ = λ·M·φ.
Mode shapes are normalized to a largest component of 1.

Examples:
  gostiff modal --file cantilever.json
  gostiff modal -f portal.json --modes 3 --chart
  gostiff modal -f portal.json -o mode.png --pdf modes.pdf`,
	RunE: runModal,
}

func init() {
	rootCmd.AddCommand(modalCmd)

	modalCmd.Flags().StringVarP(&modalFile, "file", "f", "", "Path to model JSON file [required]")
	modalCmd.MarkFlagRequired("file")
	modalCmd.Flags().Int("modes", 0, "Number of mode shapes to draw (0 = all)")
	viper.BindPFlag("modes", modalCmd.Flags().Lookup("modes"))

	// Output options
	modalCmd.Flags().BoolVar(&modalShowDiagram, "diagram", false, "Show ASCII mode shapes")
	modalCmd.Flags().BoolVar(&modalShowChart, "chart", false, "Chart mode vectors by DOF")
	modalCmd.Flags().BoolVar(&modalShowMatrix, "matrix", false, "Print the global stiffness and mass matrices")
	modalCmd.Flags().StringVarP(&modalExportFile, "output", "o", "", "Export mode shapes to file (png, svg, pdf); mode n is written as name-n.ext")
	modalCmd.Flags().StringVar(&modalXLSXFile, "xlsx", "", "Write an Excel workbook of the results")
	modalCmd.Flags().StringVar(&modalPDFFile, "pdf", "", "Write a PDF report")
}

func runModal(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modalFile, "")
	if err != nil {
		return err
	}

	rep, err := analysis.Modal(m, analysis.Options{
		Points: viper.GetInt("points"),
		Scale:  viper.GetFloat64("scale"),
		Modes:  viper.GetInt("modes"),
	})
	if err != nil {
		return err
	}
	s := rep.Summary()

	printHeader("MODAL ANALYSIS - GENERALIZED EIGENPROBLEM")
	printModelInfo(m, len(rep.Elements), s.Dofs)
	printIssues(rep.Issues)

	fmt.Printf("  Free DOFs: %v\n", s.FreeDofs)
	fmt.Printf("  Restrained DOFs: %v\n", s.RestrainedDofs)
	fmt.Println()

	fmt.Println("NATURAL FREQUENCIES:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Mode\tλ (rad²/s²)\tω (rad/s)\tf (Hz)\tT (s)\n")
	fmt.Fprintf(w, "  ────\t───────────\t─────────\t──────\t─────\n")
	for _, mode := range s.Modes {
		fmt.Fprintf(w, "  %d\t%.6e\t%.4f\t%.4f\t%.6f\n", mode.Number, mode.Eigenvalue, mode.Omega, mode.Frequency, mode.Period)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("MODE SHAPES:")
	fmt.Println(rule)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header, under := []string{"  DOF", "Node", "Dir"}, []string{"  ───", "────", "───"}
	for _, mode := range s.Modes {
		header = append(header, fmt.Sprintf("φ%d", mode.Number))
		under = append(under, "──")
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(w, strings.Join(under, "\t")+"\t")
	for i, rec := range rep.Numbering.Records {
		row := []string{fmt.Sprintf("  %d", rec.Index), fmt.Sprint(rec.Node), rec.Direction.Label()}
		for _, mode := range s.Modes {
			row = append(row, fmt.Sprintf("%.4f", mode.Shape[i].Value))
		}
		if rec.Restrained {
			row = append(row, "(restrained)")
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	fmt.Println()

	if modalShowMatrix {
		printMatrix("GLOBAL STIFFNESS MATRIX K (N/m):", rep.System.K)
		printMatrix("GLOBAL MASS MATRIX M (kg):", rep.System.M)
	}

	if len(s.Modes) > 0 {
		first := s.Modes[0]
		fmt.Print(diagram.DrawSummaryBox("FUNDAMENTAL MODE", []string{
			fmt.Sprintf("ω1 = %.4f rad/s", first.Omega),
			fmt.Sprintf("f1 = %.4f Hz", first.Frequency),
			fmt.Sprintf("T1 = %.6f s", first.Period),
		}))
		fmt.Println()
	}

	if modalShowChart && len(rep.Shapes) > 0 {
		series := make([][]float64, len(rep.Shapes))
		for i, shape := range rep.Shapes {
			series[i] = shape.Vector
		}
		fmt.Println(diagram.DrawCurveChart("Mode vectors by DOF", series...))
		fmt.Println()
	}

	for _, shape := range rep.Shapes {
		data := diagram.NewStructureData(
			fmt.Sprintf("Mode %d, f = %.4f Hz", shape.Index+1, s.Modes[shape.Index].Frequency),
			m.SortedNodes(), rep.Elements, shape.Curves, shape.Scale)
		if modalShowDiagram {
			fmt.Print(diagram.DrawASCIIStructure(data))
			fmt.Println()
		}
		if modalExportFile != "" {
			name := modeFilename(modalExportFile, shape.Index+1)
			if err := diagram.ExportStructure(data, name); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Printf("  Diagram exported to: %s\n", name)
		}
	}

	if modalXLSXFile != "" {
		if err := writeFile(modalXLSXFile, func(f *os.File) error { return report.WriteModalWorkbook(f, rep) }); err != nil {
			return err
		}
		fmt.Printf("  Workbook written to: %s\n", modalXLSXFile)
	}
	if modalPDFFile != "" {
		info := report.Info{Project: m.Name, Notes: m.Description}
		if err := writeFile(modalPDFFile, func(f *os.File) error { return report.WriteModalPDF(f, rep, info) }); err != nil {
			return err
		}
		fmt.Printf("  Report written to: %s\n", modalPDFFile)
	}
	return nil
}

// modeFilename turns shape.png into shape-2.png for mode 2
func modeFilename(name string, mode int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), mode, ext)
}
