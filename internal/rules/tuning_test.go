package rules

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestApplyOverrides(t *testing.T) {
	tu := Default()
	err := tu.Apply(map[string]float64{
		"jump_speed":     11,
		"max_jumps":      3,
		"projectile_ttl": 0.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if tu.JumpSpeed != 11 || tu.MaxJumps != 3 || tu.ProjectileTTL != 500*time.Millisecond {
		t.Errorf("tuning = %+v", tu)
	}
	if tu.Gravity != Default().Gravity {
		t.Error("untouched field changed")
	}
}

func TestApplyRejects(t *testing.T) {
	cases := []map[string]float64{
		{"jump_sped": 1},
		{"max_health": 0},
		{"gravity": math.NaN()},
	}
	for _, c := range cases {
		tu := Default()
		if err := tu.Apply(c); err == nil {
			t.Errorf("%v accepted", c)
		}
	}
}

func TestPlayerBoxes(t *testing.T) {
	tu := Default()
	a := tu.PlayerBox(mgl32.Vec3{0, 0, 0})
	b := tu.PlayerBox(mgl32.Vec3{0.9, 0, 0})
	c := tu.PlayerBox(mgl32.Vec3{1.0, 0, 0})
	if !a.Overlaps(b) {
		t.Error("0.9 apart should overlap")
	}
	if a.Overlaps(c) {
		t.Error("touching boxes should not overlap")
	}
	if !a.Contains(mgl32.Vec3{0, 1, 0}, 0) || a.Contains(mgl32.Vec3{0, 2.5, 0}, 0.1) {
		t.Error("contains")
	}
}

func TestBoxIntersectsSegment(t *testing.T) {
	tu := Default()
	box := tu.PlayerBox(mgl32.Vec3{})
	cases := []struct {
		name   string
		p0, p1 mgl32.Vec3
		want   bool
	}{
		{"passes through", mgl32.Vec3{-2, 1, 0}, mgl32.Vec3{2, 1, 0}, true},
		{"ends inside", mgl32.Vec3{-2, 1, 0}, mgl32.Vec3{0, 1, 0}, true},
		{"stops short", mgl32.Vec3{-2, 1, 0}, mgl32.Vec3{-0.6, 1, 0}, false},
		{"passes above", mgl32.Vec3{-2, 2.5, 0}, mgl32.Vec3{2, 2.5, 0}, false},
		{"diagonal miss", mgl32.Vec3{-2, 1, 1}, mgl32.Vec3{1, 1, 2}, false},
		{"point inside", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, true},
	}
	for _, c := range cases {
		if got := box.IntersectsSegment(c.p0, c.p1); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDirectionsAreUnitAndOrthogonal(t *testing.T) {
	for _, yaw := range []float32{0, 0.7, -2.1, 3.14} {
		f, r := Forward(yaw), Right(yaw)
		if math.Abs(float64(f.Len()-1)) > 1e-5 || math.Abs(float64(r.Len()-1)) > 1e-5 {
			t.Errorf("yaw %v: |f|=%v |r|=%v", yaw, f.Len(), r.Len())
		}
		if d := f.Dot(r); math.Abs(float64(d)) > 1e-5 {
			t.Errorf("yaw %v: f·r = %v", yaw, d)
		}
	}
	if a := Aim(0, 0); !a.ApproxEqual(Forward(0)) {
		t.Errorf("aim level = %v", a)
	}
}
