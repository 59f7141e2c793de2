package report_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/report"
	"github.com/xuri/excelize/v2"
)

func portal(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.LoadFromFile(filepath.Join("..", "analysis", "testdata", "portal.json"))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStaticWorkbook(t *testing.T) {
	rep, err := analysis.Static(portal(t), analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := report.WriteStaticWorkbook(&buf, rep); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{"Summary", "Results", "K", "Elements"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d: got %s, want %s", i, got[i], want[i])
		}
	}

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 {
		t.Errorf("result rows: got %d, want 7", len(rows))
	}
	if v, _ := f.GetCellValue("K", "A1"); v != "K" {
		t.Errorf("K title: got %q", v)
	}
}

func TestModalWorkbook(t *testing.T) {
	rep, err := analysis.Modal(portal(t), analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := report.WriteModalWorkbook(&buf, rep); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Modes")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != rep.Result.NumModes()+1 {
		t.Errorf("mode rows: got %d", len(rows))
	}
	if _, err := f.GetRows("M"); err != nil {
		t.Errorf("mass sheet: %v", err)
	}
}

func TestPDF(t *testing.T) {
	m := portal(t)
	info := report.Info{Project: "Test", Author: "QA", Notes: "Portal frame under wind"}

	static, err := analysis.Static(m, analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := report.WriteStaticPDF(&buf, static, info); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("static report is not a PDF")
	}

	modal, err := analysis.Modal(m, analysis.Options{Modes: 2})
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := report.WriteModalPDF(&buf, modal, info); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("modal report is not a PDF")
	}
}
