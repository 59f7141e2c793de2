package model

import "math"

// Length returns the distance between two nodes
func Length(a, b Node) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Orientation returns the angle from the global x-axis to the line a→b,
// in (-π, π]
func Orientation(a, b Node) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Bounds returns the bounding box of the nodes
func Bounds(nodes []Node) (minX, maxX, minY, maxY float64) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = nodes[0].X, nodes[0].X
	minY, maxY = nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, maxX, minY, maxY
}
