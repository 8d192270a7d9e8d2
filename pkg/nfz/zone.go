// Package nfz implements the no-fly-zone geofence test.
package nfz

// Zone is a circular no-fly zone of radius Radius centered at the origin.
type Zone struct {
	Radius float64
}

// NewZone creates a zone with the given radius in meters.
func NewZone(radius float64) Zone {
	return Zone{Radius: radius}
}

// Contains reports whether the point (x, y) lies inside the zone.
// The boundary counts as inside. A zone with radius <= 0 contains nothing.
func (z Zone) Contains(x, y float64) bool {
	if z.Radius <= 0 {
		return false
	}
	return x*x+y*y <= z.Radius*z.Radius
}
