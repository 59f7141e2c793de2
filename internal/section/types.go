package section

import "fmt"

// Shape identifies a parametric cross-section family
type Shape string

const (
	SolidCircle  Shape = "solid_circle"
	HollowCircle Shape = "hollow_circle"
	Rectangle    Shape = "rectangle"
	Square       Shape = "square"
	Polygon      Shape = "polygon"
	Custom       Shape = "custom"
)

// Shapes lists every supported shape in presentation order
var Shapes = []Shape{SolidCircle, HollowCircle, Rectangle, Square, Polygon, Custom}

// Section represents a member cross-section.
// Only the parameters relevant to Shape are read; the rest are ignored.
// All lengths are in metres.
type Section struct {
	Shape Shape `json:"shape"`

	// Circular shapes
	Radius      float64 `json:"radius,omitempty"`
	OuterRadius float64 `json:"outer_radius,omitempty"`
	InnerRadius float64 `json:"inner_radius,omitempty"`

	// Rectangular shapes (Base is the width, Height the depth in the bending plane)
	Base   float64 `json:"base,omitempty"`
	Height float64 `json:"height,omitempty"`
	Side   float64 `json:"side,omitempty"`

	// Custom shape: properties are given directly
	Area    float64 `json:"area,omitempty"`
	Inertia float64 `json:"inertia,omitempty"`

	// Polygon outline, counter-clockwise preferred but either winding works
	Vertices []Point `json:"vertices,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Properties holds calculated geometric properties
type Properties struct {
	Area    float64 // m²
	Inertia float64 // m⁴, about the horizontal centroidal axis

	// Centroid location (only meaningful for polygons)
	CentroidX float64
	CentroidY float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Validate checks that the section carries strictly positive dimensions.
// Property calculation itself never fails; Validate is for callers that
// want to reject partially configured sections.
func (s *Section) Validate() error {
	switch s.Shape {
	case SolidCircle:
		if s.Radius <= 0 {
			return &ValidationError{"radius must be positive"}
		}
	case HollowCircle:
		if s.OuterRadius <= 0 {
			return &ValidationError{"outer radius must be positive"}
		}
		if s.InnerRadius < 0 || s.InnerRadius >= s.OuterRadius {
			return &ValidationError{msg: fmt.Sprintf("inner radius %g must be in [0, %g)", s.InnerRadius, s.OuterRadius)}
		}
	case Rectangle:
		if s.Base <= 0 || s.Height <= 0 {
			return &ValidationError{"base and height must be positive"}
		}
	case Square:
		if s.Side <= 0 {
			return &ValidationError{"side must be positive"}
		}
	case Polygon:
		if len(s.Vertices) < 3 {
			return &ValidationError{"polygon section must have at least 3 vertices"}
		}
	case Custom:
		if s.Area <= 0 {
			return &ValidationError{"custom area must be positive"}
		}
	default:
		return &ValidationError{msg: fmt.Sprintf("unknown section shape %q", s.Shape)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
