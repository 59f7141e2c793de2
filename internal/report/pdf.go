package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/diagram"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/units"
	"github.com/alexiusacademia/gostiff/internal/version"
	"github.com/phpdave11/gofpdf"
)

// Info is the title block of a PDF report
type Info struct {
	Project string
	Author  string
	Title   string
	Notes   string
}

func newDocument(info Info, fallback string) *gofpdf.Fpdf {
	if info.Title == "" {
		info.Title = fallback
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreator(fmt.Sprintf("gostiff %s", version.Version), true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, info.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if info.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", info.Project))
		pdf.Ln(6)
	}
	if info.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", info.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)
	if info.Notes != "" {
		pdf.MultiCell(0, 6, info.Notes, "", "L", false)
		pdf.Ln(4)
	}
	return pdf
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

// table draws a bordered table with a shaded header row
func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, v := range row {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// figure renders the structure diagram to a temporary PNG and places it
// on the page
func figure(pdf *gofpdf.Fpdf, data diagram.StructureDiagramData) error {
	dir, err := os.MkdirTemp("", "gostiff-report")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "structure.png")
	if err := diagram.ExportStructure(data, path); err != nil {
		return err
	}
	pdf.ImageOptions(path, 15, pdf.GetY(), 180, 0, true, gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	return nil
}

// WriteStaticPDF writes a static analysis report
func WriteStaticPDF(w io.Writer, rep *analysis.StaticReport, info Info) error {
	pdf := newDocument(info, "Static Analysis Report")
	s := rep.Summary()

	heading(pdf, "Summary")
	lines := []string{
		fmt.Sprintf("Model: %s", s.Name),
		fmt.Sprintf("Element type: %s", s.ElementType),
		fmt.Sprintf("Load combination: %s", s.Combination),
		fmt.Sprintf("Degrees of freedom: %d", s.Dofs),
		fmt.Sprintf("det(K) = %.6e", s.Determinant),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	for _, warning := range s.Warnings {
		pdf.MultiCell(0, 5, "Warning: "+asciiOnly(warning), "", "L", false)
	}

	heading(pdf, "Nodal results")
	var rows [][]string
	for i := range s.Displacements {
		d, f := s.Displacements[i], s.Forces[i]
		value := units.Length(d.Value)
		force := units.Force(f.Value)
		if d.Direction == element.Theta {
			value = fmt.Sprintf("%.6e rad", d.Value)
			force = fmt.Sprintf("%.3f N.m", f.Value)
		}
		rows = append(rows, []string{
			fmt.Sprint(d.Dof), fmt.Sprint(d.Node), string(d.Direction),
			asciiOnly(value), asciiOnly(force), known(d.Known, f.Known),
		})
	}
	table(pdf, []float64{15, 15, 20, 45, 45, 40}, []string{"DOF", "Node", "Dir", "Displacement", "Force", "Condition"}, rows)

	heading(pdf, "Deformed shape")
	data := diagram.NewStructureData("Deformed shape", rep.Model.SortedNodes(), rep.Elements, rep.Curves, rep.Scale)
	if err := figure(pdf, data); err != nil {
		return err
	}
	return pdf.Output(w)
}

// WriteModalPDF writes a modal analysis report with one figure per
// interpolated mode
func WriteModalPDF(w io.Writer, rep *analysis.ModalReport, info Info) error {
	pdf := newDocument(info, "Modal Analysis Report")
	s := rep.Summary()

	heading(pdf, "Natural frequencies")
	var rows [][]string
	for _, m := range s.Modes {
		rows = append(rows, []string{
			fmt.Sprint(m.Number),
			fmt.Sprintf("%.6e", m.Eigenvalue),
			fmt.Sprintf("%.4f", m.Omega),
			fmt.Sprintf("%.4f", m.Frequency),
			fmt.Sprintf("%.6f", m.Period),
		})
	}
	table(pdf, []float64{20, 45, 40, 40, 35}, []string{"Mode", "omega^2 (rad2/s2)", "omega (rad/s)", "f (Hz)", "T (s)"}, rows)

	for _, shape := range rep.Shapes {
		pdf.AddPage()
		heading(pdf, fmt.Sprintf("Mode %d: f = %.4f Hz", shape.Index+1, rep.Result.FrequenciesHz[shape.Index]))
		title := fmt.Sprintf("Mode %d", shape.Index+1)
		data := diagram.NewStructureData(title, rep.Model.SortedNodes(), rep.Elements, shape.Curves, shape.Scale)
		if err := figure(pdf, data); err != nil {
			return err
		}
	}
	return pdf.Output(w)
}

func known(displacement, force bool) string {
	switch {
	case displacement:
		return "displacement given"
	case force:
		return "force given"
	}
	return ""
}

// asciiOnly replaces the symbols the core PDF fonts cannot encode
func asciiOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case 'μ':
			out = append(out, 'u')
		case 'θ':
			out = append(out, []rune("theta")...)
		default:
			if r < 128 {
				out = append(out, r)
			} else {
				out = append(out, '?')
			}
		}
	}
	return string(out)
}
