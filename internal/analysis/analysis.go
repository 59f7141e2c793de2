// Package analysis runs a model through numbering, assembly, solution and
// deformation interpolation. It is the entry point used by the CLI, the
// HTTP API and the report writers.
package analysis

import (
	"github.com/alexiusacademia/gostiff/internal/assembly"
	"github.com/alexiusacademia/gostiff/internal/deform"
	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/nscp"
	"github.com/alexiusacademia/gostiff/internal/solver"
)

// Options control a run
type Options struct {
	Library material.Library // nil means material.Default()
	Cache   *assembly.Cache
	Points  int     // samples per element curve; 0 means deform.DefaultPoints
	Scale   float64 // deformation scale; 0 means automatic
	Modes   int     // modal: number of mode shapes to interpolate; 0 means all
}

func (o Options) library() material.Library {
	if o.Library == nil {
		return material.Default()
	}
	return o.Library
}

func (o Options) points() int {
	if o.Points <= 0 {
		return deform.DefaultPoints
	}
	return o.Points
}

func (o Options) scale(nodes []model.Node, u []float64) float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	return deform.AutoScale(nodes, u)
}

// Setup is the part shared by both analyses
type Setup struct {
	Model       *model.Model
	Elements    []model.Element
	Numbering   *dof.Numbering
	System      *assembly.System
	Combination nscp.LoadCombination

	// Issues collects per-element errors that did not stop the run
	Issues error
}

// StaticReport is the outcome of a static analysis
type StaticReport struct {
	Setup
	Result *solver.StaticResult
	Scale  float64
	Curves []deform.Polyline
}

// ModeShape is the interpolated shape of one mode
type ModeShape struct {
	Index  int // 0-based
	Vector []float64
	Scale  float64
	Curves []deform.Polyline
}

// ModalReport is the outcome of a modal analysis
type ModalReport struct {
	Setup
	Result *solver.DynamicResult
	Shapes []ModeShape
}

func prepare(m *model.Model, opts Options, mass bool) (*Setup, error) {
	elements, err := m.Elements(opts.library())
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		if mass {
			return nil, &solver.DynamicError{Reason: solver.ErrNoElements}
		}
		return nil, &solver.StaticError{Reason: solver.ErrNoElements}
	}

	combo, err := nscp.Find(m.Combination)
	if err != nil {
		return nil, err
	}

	// Mismatches found here are reported again by Assemble
	n, _ := dof.Assign(m.SortedNodes(), elements, m.ElementType)
	n.Apply(m.Nodes, combo)

	sys, issues := assembly.Assemble(elements, n, assembly.Options{Mass: mass, Cache: opts.Cache})
	return &Setup{
		Model:       m,
		Elements:    elements,
		Numbering:   n,
		System:      sys,
		Combination: combo,
		Issues:      issues,
	}, nil
}

// Static runs a static analysis of m
func Static(m *model.Model, opts Options) (*StaticReport, error) {
	setup, err := prepare(m, opts, false)
	if err != nil {
		return nil, err
	}
	if setup.Numbering.Count() == 0 {
		return nil, &solver.StaticError{Reason: solver.ErrNoFreeDofs}
	}

	records, warnings := solver.ResolveConditions(setup.Numbering.Records)
	res, err := solver.SolveStatic(setup.System.K, records)
	if err != nil {
		return nil, err
	}
	res.Warnings = warnings
	setup.Numbering.Records = records

	scale := opts.scale(m.Nodes, res.Displacements)
	return &StaticReport{
		Setup:  *setup,
		Result: res,
		Scale:  scale,
		Curves: deform.Structure(setup.Elements, setup.Numbering, res.Displacements, scale, opts.points()),
	}, nil
}

// Modal runs a free-vibration analysis of m
func Modal(m *model.Model, opts Options) (*ModalReport, error) {
	setup, err := prepare(m, opts, true)
	if err != nil {
		return nil, err
	}
	if setup.Numbering.Count() == 0 {
		return nil, &solver.DynamicError{Reason: solver.ErrNoFreeDofs}
	}

	res, err := solver.SolveDynamic(setup.System.K, setup.System.M, setup.Numbering.Records)
	if err != nil {
		return nil, err
	}

	count := res.NumModes()
	if opts.Modes > 0 && opts.Modes < count {
		count = opts.Modes
	}
	report := &ModalReport{Setup: *setup, Result: res}
	for i := 0; i < count; i++ {
		v := res.ModeVector(i)
		scale := opts.scale(m.Nodes, v)
		report.Shapes = append(report.Shapes, ModeShape{
			Index:  i,
			Vector: v,
			Scale:  scale,
			Curves: deform.Structure(setup.Elements, setup.Numbering, v, scale, opts.points()),
		})
	}
	return report, nil
}
