// Package report writes analysis results as Excel workbooks and PDF
// documents.
package report

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/assembly"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

// workbook wraps an excelize file with a bold header style
type workbook struct {
	f      *excelize.File
	header int
	first  bool
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &workbook{f: f, header: style, first: true}, nil
}

// sheet creates a sheet (renaming the default one the first time) and
// writes a bold header row
func (wb *workbook) sheet(name string, header ...interface{}) error {
	if wb.first {
		if err := wb.f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
		wb.first = false
	} else if _, err := wb.f.NewSheet(name); err != nil {
		return err
	}
	if len(header) == 0 {
		return nil
	}
	if err := wb.f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(name, "A1", end, wb.header)
}

func (wb *workbook) row(sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.f.SetSheetRow(sheet, cell, &values)
}

// matrix writes m with 1-based labels starting at row
func (wb *workbook) matrix(sheet string, row int, title string, m mat.Matrix) (int, error) {
	if m == nil || isNilSym(m) {
		return row, nil
	}
	r, c := m.Dims()
	if err := wb.row(sheet, row, title); err != nil {
		return row, err
	}
	row++
	labels := make([]interface{}, c+1)
	for j := 0; j < c; j++ {
		labels[j+1] = j + 1
	}
	if err := wb.row(sheet, row, labels...); err != nil {
		return row, err
	}
	row++
	for i := 0; i < r; i++ {
		values := make([]interface{}, c+1)
		values[0] = i + 1
		for j := 0; j < c; j++ {
			values[j+1] = m.At(i, j)
		}
		if err := wb.row(sheet, row, values...); err != nil {
			return row, err
		}
		row++
	}
	return row + 1, nil
}

func (wb *workbook) elements(ems []assembly.ElementMatrices) error {
	if err := wb.sheet("Elements"); err != nil {
		return err
	}
	row := 1
	var err error
	for _, em := range ems {
		for _, part := range []struct {
			title string
			m     mat.Matrix
		}{
			{fmt.Sprintf("Element %d: local stiffness", em.ID), em.LocalStiffness},
			{fmt.Sprintf("Element %d: transformation", em.ID), em.Transformation},
			{fmt.Sprintf("Element %d: global stiffness", em.ID), em.GlobalStiffness},
			{fmt.Sprintf("Element %d: local mass", em.ID), em.LocalMass},
			{fmt.Sprintf("Element %d: global mass", em.ID), em.GlobalMass},
		} {
			if row, err = wb.matrix("Elements", row, part.title, part.m); err != nil {
				return err
			}
		}
	}
	return nil
}

func isNilSym(m mat.Matrix) bool {
	s, ok := m.(*mat.SymDense)
	return ok && s == nil
}

func (wb *workbook) system(title string, m mat.Matrix) error {
	if err := wb.sheet(title); err != nil {
		return err
	}
	_, err := wb.matrix(title, 1, title, m)
	return err
}

func (wb *workbook) write(w io.Writer) error {
	defer wb.f.Close()
	_, err := wb.f.WriteTo(w)
	return err
}

// WriteStaticWorkbook writes summary, results, global K and element
// matrices of a static analysis
func WriteStaticWorkbook(w io.Writer, rep *analysis.StaticReport) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	s := rep.Summary()

	if err := wb.sheet("Summary", "Item", "Value"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Model", s.Name},
		{"Element type", s.ElementType},
		{"Load combination", s.Combination},
		{"Degrees of freedom", s.Dofs},
		{"det(K)", s.Determinant},
		{"Plot scale", s.Scale},
	}
	for _, warning := range s.Warnings {
		rows = append(rows, []interface{}{"Warning", warning})
	}
	if s.Issues != "" {
		rows = append(rows, []interface{}{"Skipped elements", s.Issues})
	}
	for i, r := range rows {
		if err := wb.row("Summary", i+2, r...); err != nil {
			return err
		}
	}

	if err := wb.sheet("Results", "DOF", "Node", "Direction", "Displacement", "Prescribed", "Force", "Applied"); err != nil {
		return err
	}
	for i := range s.Displacements {
		d, f := s.Displacements[i], s.Forces[i]
		if err := wb.row("Results", i+2, d.Dof, d.Node, d.Direction.Label(), d.Value, d.Known, f.Value, f.Known); err != nil {
			return err
		}
	}

	if err := wb.system("K", rep.System.K); err != nil {
		return err
	}
	if err := wb.elements(rep.System.Elements); err != nil {
		return err
	}
	return wb.write(w)
}

// WriteModalWorkbook writes the mode table, mode shapes, global K and M
// and element matrices of a modal analysis
func WriteModalWorkbook(w io.Writer, rep *analysis.ModalReport) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	s := rep.Summary()

	if err := wb.sheet("Modes", "Mode", "ω² (rad²/s²)", "ω (rad/s)", "f (Hz)", "T (s)"); err != nil {
		return err
	}
	for i, m := range s.Modes {
		if err := wb.row("Modes", i+2, m.Number, m.Eigenvalue, m.Omega, m.Frequency, m.Period); err != nil {
			return err
		}
	}

	header := []interface{}{"DOF", "Node", "Direction", "Restrained"}
	for _, m := range s.Modes {
		header = append(header, fmt.Sprintf("Mode %d", m.Number))
	}
	if err := wb.sheet("Shapes", header...); err != nil {
		return err
	}
	for i, rec := range rep.Numbering.Records {
		values := []interface{}{rec.Index, rec.Node, rec.Direction.Label(), rec.Restrained}
		for _, m := range s.Modes {
			values = append(values, m.Shape[i].Value)
		}
		if err := wb.row("Shapes", i+2, values...); err != nil {
			return err
		}
	}

	if err := wb.system("K", rep.System.K); err != nil {
		return err
	}
	if err := wb.system("M", rep.System.M); err != nil {
		return err
	}
	if err := wb.elements(rep.System.Elements); err != nil {
		return err
	}
	return wb.write(w)
}
