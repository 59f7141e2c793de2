package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/diagram"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/report"
	"github.com/alexiusacademia/gostiff/internal/units"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	staticFile        string
	staticCombo       string
	staticShowDiagram bool
	staticShowMatrix  bool
	staticShowChart   bool
	staticExportFile  string
	staticXLSXFile    string
	staticPDFFile     string
)

var staticCmd = &cobra.Command{
	Use:   "static",
	Short: "Solve a structure for displacements and reactions",
	Long: `Run a static analysis of the structure defined in a JSON model file.

Every free DOF must carry either a prescribed displacement ("known")
or an applied force ("forces" or NSCP load cases). A DOF with both uses
the displacement; a DOF with neither gets a zero force. Both cases are
reported as warnings.

Examples:
  gostiff static --file truss.json
  gostiff static -f portal.json --combo 4 --diagram
  gostiff static -f portal.json -o deformed.png --xlsx results.xlsx --pdf report.pdf`,
	RunE: runStatic,
}

func init() {
	rootCmd.AddCommand(staticCmd)

	staticCmd.Flags().StringVarP(&staticFile, "file", "f", "", "Path to model JSON file [required]")
	staticCmd.MarkFlagRequired("file")
	staticCmd.Flags().StringVarP(&staticCombo, "combo", "c", "", "NSCP load combination id (overrides the model)")

	// Output options
	staticCmd.Flags().BoolVar(&staticShowDiagram, "diagram", false, "Show ASCII deformed shape")
	staticCmd.Flags().BoolVar(&staticShowMatrix, "matrix", false, "Print the global stiffness matrix")
	staticCmd.Flags().BoolVar(&staticShowChart, "chart", false, "Chart displacements and forces by DOF")
	staticCmd.Flags().StringVarP(&staticExportFile, "output", "o", "", "Export deformed shape to file (png, svg, pdf)")
	staticCmd.Flags().StringVar(&staticXLSXFile, "xlsx", "", "Write an Excel workbook of the results")
	staticCmd.Flags().StringVar(&staticPDFFile, "pdf", "", "Write a PDF report")
}

func loadModel(path, combo string) (*model.Model, error) {
	m, err := model.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	if combo != "" {
		m.Combination = combo
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func runStatic(cmd *cobra.Command, args []string) error {
	m, err := loadModel(staticFile, staticCombo)
	if err != nil {
		return err
	}

	rep, err := analysis.Static(m, analysis.Options{
		Points: viper.GetInt("points"),
		Scale:  viper.GetFloat64("scale"),
	})
	if err != nil {
		return err
	}
	s := rep.Summary()

	printHeader("STATIC ANALYSIS - DIRECT STIFFNESS METHOD")
	printModelInfo(m, len(rep.Elements), s.Dofs)
	fmt.Printf("  Load combination: %s\n", s.Combination)
	fmt.Println()
	printIssues(rep.Issues)

	if len(s.Warnings) > 0 {
		fmt.Println("BOUNDARY CONDITION WARNINGS:")
		fmt.Println(rule)
		for _, w := range s.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
		fmt.Println()
	}

	fmt.Println("NODAL DISPLACEMENTS AND FORCES:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  DOF\tNode\tDir\tDisplacement\tForce\t\n")
	fmt.Fprintf(w, "  ───\t────\t───\t────────────\t─────\t\n")
	for i := range s.Displacements {
		d, f := s.Displacements[i], s.Forces[i]
		disp, force := units.Length(d.Value), units.Force(f.Value)
		if d.Direction == element.Theta {
			disp, force = fmt.Sprintf("%.6e rad", d.Value), fmt.Sprintf("%.3f N·m", f.Value)
		}
		mark := ""
		if d.Known {
			mark = "(reaction)"
		}
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\t%s\n", d.Dof, d.Node, d.Direction.Label(), disp, force, mark)
	}
	w.Flush()
	fmt.Println()

	if staticShowMatrix {
		printMatrix("GLOBAL STIFFNESS MATRIX K (N/m):", rep.System.K)
	}

	fmt.Print(diagram.DrawSummaryBox("STATIC RESULTS", []string{
		fmt.Sprintf("Max |displacement| = %s", units.Length(maxAbs(rep.Result.Displacements))),
		fmt.Sprintf("det(K) = %.6e", s.Determinant),
	}))
	fmt.Println()

	if staticShowChart {
		fmt.Println(diagram.DrawCurveChart("Displacement by DOF", rep.Result.Displacements))
		fmt.Println()
		fmt.Println(diagram.DrawCurveChart("Force by DOF", rep.Result.Forces))
		fmt.Println()
	}

	data := diagram.NewStructureData("Deformed shape", m.SortedNodes(), rep.Elements, rep.Curves, rep.Scale)
	if staticShowDiagram {
		fmt.Print(diagram.DrawASCIIStructure(data))
		fmt.Println()
	}
	if staticExportFile != "" {
		if err := diagram.ExportStructure(data, staticExportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("  Diagram exported to: %s\n", staticExportFile)
	}

	if staticXLSXFile != "" {
		if err := writeFile(staticXLSXFile, func(f *os.File) error { return report.WriteStaticWorkbook(f, rep) }); err != nil {
			return err
		}
		fmt.Printf("  Workbook written to: %s\n", staticXLSXFile)
	}
	if staticPDFFile != "" {
		info := report.Info{Project: m.Name, Notes: m.Description}
		if err := writeFile(staticPDFFile, func(f *os.File) error { return report.WriteStaticPDF(f, rep, info) }); err != nil {
			return err
		}
		fmt.Printf("  Report written to: %s\n", staticPDFFile)
	}
	return nil
}
