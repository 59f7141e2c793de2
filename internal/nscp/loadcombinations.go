package nscp

import "fmt"

// LoadType identifies the source of a nodal load
type LoadType string

const (
	Dead       LoadType = "dead"
	Live       LoadType = "live"
	Roof       LoadType = "roof"
	Wind       LoadType = "wind"
	Earthquake LoadType = "earthquake"
	Rain       LoadType = "rain"
)

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load

	// Either lists groups written "(a or b)": only the factored term of
	// largest magnitude in each group is added
	Either [][]LoadType
}

// LoadTypes lists the load types in summation order
var LoadTypes = []LoadType{Dead, Live, Roof, Wind, Earthquake, Rain}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
		Either:      [][]LoadType{{Roof, Rain}},
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
		Either:      [][]LoadType{{Roof, Rain}, {Live, Wind}},
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
		Either:      [][]LoadType{{Roof, Rain}},
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// Unfactored is the combination that adds every load type with factor 1.
// It is used when a model has load cases but no combination is selected.
var Unfactored = LoadCombination{
	ID:          "0",
	Description: "D + L + Lr + W + E + R (unfactored)",
	Dead:        1, Live: 1, Roof: 1, Wind: 1, Earthquake: 1, Rain: 1,
}

// Factor returns the load factor this combination applies to a load type
func (lc LoadCombination) Factor(t LoadType) float64 {
	switch t {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Combine returns the factored sum of values keyed by load type
func (lc LoadCombination) Combine(values map[LoadType]float64) float64 {
	terms := make(map[LoadType]float64, len(values))
	for t, v := range values {
		terms[t] = lc.Factor(t) * v
	}
	for _, group := range lc.Either {
		keep := group[0]
		for _, t := range group[1:] {
			if abs(terms[t]) > abs(terms[keep]) {
				keep = t
			}
		}
		for _, t := range group {
			if t != keep {
				delete(terms, t)
			}
		}
	}

	var sum float64
	for _, t := range LoadTypes {
		sum += terms[t]
	}
	return sum
}

// Find looks up a combination by ID. The empty ID selects Unfactored.
func Find(id string) (LoadCombination, error) {
	if id == "" || id == Unfactored.ID {
		return Unfactored, nil
	}
	for _, combo := range LoadCombinations {
		if combo.ID == id {
			return combo, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
}

// ValidLoadType reports whether t is one of the NSCP load types
func ValidLoadType(t LoadType) bool {
	for _, lt := range LoadTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// Governing evaluates every combination and returns the factored value of
// largest magnitude with the combination that produced it
func Governing(values map[LoadType]float64, combinations []LoadCombination) (float64, LoadCombination) {
	var best float64
	var governing LoadCombination
	for i, combo := range combinations {
		v := combo.Combine(values)
		if i == 0 || abs(v) > abs(best) {
			best, governing = v, combo
		}
	}
	return best, governing
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
