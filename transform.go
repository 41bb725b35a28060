package arcgallery

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Matrix returns the affine matrix that maps card-local coordinates (origin
// at the card center) to surface-centered coordinates:
//
//	Rotate(Rotation) -> Translate(X, Y)
//
// Layout is [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	return [6]float64{cos, sin, -sin, cos, t.X, t.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ScreenMatrix converts surface-centered, Y-up coordinates to screen
// coordinates (origin top-left, Y down) for a surface of the given size.
func ScreenMatrix(width, height float64) [6]float64 {
	return [6]float64{1, 0, 0, -1, width / 2, height / 2}
}

// ScreenTransform returns the matrix mapping card pixels (origin at the card's
// top-left corner, Y down, Width x Height) to screen pixels on a surface of
// the given size.
func (t Transform) ScreenTransform(width, height float64) [6]float64 {
	card := [6]float64{1, 0, 0, -1, -t.Width / 2, t.Height / 2}
	return multiplyAffine(ScreenMatrix(width, height), multiplyAffine(t.Matrix(), card))
}

// ScreenToSurface converts a screen point to surface-centered coordinates.
func ScreenToSurface(width, height, sx, sy float64) (float64, float64) {
	return transformPoint(invertAffine(ScreenMatrix(width, height)), sx, sy)
}

// Contains reports whether the surface-centered point (x, y) lies on the card.
// Points on the edge are considered inside.
func (t Transform) Contains(x, y float64) bool {
	lx, ly := transformPoint(invertAffine(t.Matrix()), x, y)
	return math.Abs(lx) <= t.Width/2 && math.Abs(ly) <= t.Height/2
}

// ItemAt returns the placement under the surface-centered point (x, y) from
// the last Update. Cards nearer the center are drawn on top, so among
// overlapping hits the one with the smallest |X| wins.
func (g *Gallery) ItemAt(x, y float64) (Placement, bool) {
	var (
		best  Placement
		found bool
	)
	for _, p := range g.placements {
		if !p.Contains(x, y) {
			continue
		}
		if !found || math.Abs(p.X) < math.Abs(best.X) {
			best = p
			found = true
		}
	}
	return best, found
}
