package diagram

import (
	"strconv"

	"github.com/alexiusacademia/gostiff/internal/deform"
	"github.com/alexiusacademia/gostiff/internal/model"
)

// NewStructureData collects the undeformed geometry of the elements and
// the given deflected curves
func NewStructureData(title string, nodes []model.Node, elements []model.Element, deformed []deform.Polyline, scale float64) StructureDiagramData {
	data := StructureDiagramData{Title: title, Deformed: deformed, Scale: scale}
	for _, el := range elements {
		data.Original = append(data.Original, Segment{X1: el.Start.X, Y1: el.Start.Y, X2: el.End.X, Y2: el.End.Y})
	}
	for _, n := range nodes {
		data.Nodes = append(data.Nodes, Label{X: n.X, Y: n.Y, Text: strconv.Itoa(n.ID)})
	}
	return data
}
