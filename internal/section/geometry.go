package section

import (
	"math"
)

// CalculateProperties computes area and moment of inertia of the section.
// Missing or degenerate parameters produce zero values instead of an error
// so that partially configured members can still be listed.
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}

	switch s.Shape {
	case SolidCircle:
		r := s.Radius
		props.Area = math.Pi * r * r
		props.Inertia = math.Pi * math.Pow(r, 4) / 4
		props.MinX, props.MaxX, props.MinY, props.MaxY = -r, r, -r, r

	case HollowCircle:
		ro, ri := s.OuterRadius, s.InnerRadius
		props.Area = math.Pi * (ro*ro - ri*ri)
		props.Inertia = math.Pi * (math.Pow(ro, 4) - math.Pow(ri, 4)) / 4
		props.MinX, props.MaxX, props.MinY, props.MaxY = -ro, ro, -ro, ro

	case Rectangle:
		props.Area = s.Base * s.Height
		props.Inertia = s.Base * math.Pow(s.Height, 3) / 12
		props.MinX, props.MaxX = -s.Base/2, s.Base/2
		props.MinY, props.MaxY = -s.Height/2, s.Height/2

	case Square:
		props.Area = s.Side * s.Side
		props.Inertia = math.Pow(s.Side, 4) / 12
		props.MinX, props.MaxX = -s.Side/2, s.Side/2
		props.MinY, props.MaxY = -s.Side/2, s.Side/2

	case Polygon:
		s.calculatePolygonProperties(props)

	case Custom:
		props.Area = s.Area
		props.Inertia = s.Inertia
	}

	// Negative results only come from inconsistent input (e.g. inner > outer)
	if props.Area < 0 {
		props.Area = 0
	}
	if props.Inertia < 0 {
		props.Inertia = 0
	}

	return props
}

// AreaAndInertia is a shorthand for CalculateProperties
func (s *Section) AreaAndInertia() (area, inertia float64) {
	props := s.CalculateProperties()
	return props.Area, props.Inertia
}

func (s *Section) calculatePolygonProperties(props *Properties) {
	n := len(s.Vertices)
	if n < 3 {
		return
	}

	// Find bounding box
	props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
	props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y
	for _, v := range s.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	// Shoelace formula for area, first and second moments about the origin
	var signedArea, sumX, sumY, sumIx float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := s.Vertices[i], s.Vertices[j]
		cross := vi.X*vj.Y - vj.X*vi.Y
		signedArea += cross
		sumX += (vi.X + vj.X) * cross
		sumY += (vi.Y + vj.Y) * cross
		sumIx += (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y) * cross
	}
	signedArea /= 2
	if signedArea == 0 {
		return
	}

	props.CentroidX = sumX / (6 * signedArea)
	props.CentroidY = sumY / (6 * signedArea)
	props.Area = math.Abs(signedArea)

	// Same sign as signedArea; dividing out the orientation
	ixOrigin := sumIx / 12
	if signedArea < 0 {
		ixOrigin = -ixOrigin
	}

	// Parallel axis theorem to move to the centroid
	props.Inertia = ixOrigin - props.Area*props.CentroidY*props.CentroidY
}
