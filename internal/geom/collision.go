package geom

// CirclesOverlap reports whether two circles intersect. Touching circles do
// not overlap.
func CirclesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	r := ra + rb
	return a.DistSq(b) < r*r
}

// WithinDistance reports whether the centers of a and b are at most d apart.
func WithinDistance(a, b Vec, d float64) bool {
	return a.DistSq(b) <= d*d
}

// SegmentCircle reports whether the segment from start along dir (unit or
// not) for length units passes within radius of center. A zero direction or
// non-positive length never intersects.
func SegmentCircle(start, dir Vec, length float64, center Vec, radius float64) bool {
	if length <= 0 {
		return false
	}
	d := dir.Normalize()
	if d.IsZero() {
		return false
	}
	t := Clamp(center.Sub(start).Dot(d), 0, length)
	closest := start.Add(d.Scale(t))
	return closest.DistSq(center) <= radius*radius
}

// InCone reports whether target lies within halfAngle radians of heading as
// seen from origin.
func InCone(origin Vec, heading float64, target Vec, halfAngle float64) bool {
	to := target.Sub(origin)
	if to.IsZero() {
		return true
	}
	diff := NormalizeAngle(to.Angle() - heading)
	if diff < 0 {
		diff = -diff
	}
	return diff <= halfAngle
}
