package rules

import "github.com/go-gl/mathgl/mgl32"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl32.Vec3
}

// PlayerBox returns the box of a player standing at feet position p.
func (t *Tuning) PlayerBox(p mgl32.Vec3) Box {
	hw := t.PlayerHalfWidth
	return Box{
		Min: mgl32.Vec3{p[0] - hw, p[1], p[2] - hw},
		Max: mgl32.Vec3{p[0] + hw, p[1] + t.PlayerHeight, p[2] + hw},
	}
}

// Overlaps reports whether two boxes intersect with positive volume.
func (b Box) Overlaps(o Box) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] <= o.Min[i] || o.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p is inside b, inflated by r on every side.
func (b Box) Contains(p mgl32.Vec3, r float32) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-r || p[i] > b.Max[i]+r {
			return false
		}
	}
	return true
}

// IntersectsSegment reports whether the segment from p0 to p1 touches b.
// Slab test: the segment parameter range is clipped against each axis.
func (b Box) IntersectsSegment(p0, p1 mgl32.Vec3) bool {
	tmin, tmax := float32(0), float32(1)
	d := p1.Sub(p0)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if p0[i] < b.Min[i] || p0[i] > b.Max[i] {
				return false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (b.Min[i] - p0[i]) * inv
		t2 := (b.Max[i] - p0[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

// Forward returns the horizontal unit vector a yaw faces.
func Forward(yaw float32) mgl32.Vec3 {
	s, c := sincos(yaw)
	return mgl32.Vec3{c, 0, s}
}

// Right returns the horizontal unit vector to the right of yaw.
func Right(yaw float32) mgl32.Vec3 {
	s, c := sincos(yaw)
	return mgl32.Vec3{-s, 0, c}
}

// Aim returns the unit vector for yaw and pitch.
func Aim(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := sincos(yaw)
	sp, cp := sincos(pitch)
	return mgl32.Vec3{cp * cy, sp, cp * sy}
}
