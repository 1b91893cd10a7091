package vecmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestTiltSpinOrthonormal(t *testing.T) {
	for tilt := -3.0; tilt <= 3.0; tilt += 0.37 {
		for spin := -7.0; spin <= 7.0; spin += 0.91 {
			m := TiltSpin(tilt, spin)
			cols := [3]mgl32.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}
			for i, c := range cols {
				if !near(c.Len(), 1) {
					t.Fatalf("tilt=%.2f spin=%.2f: column %d length %f", tilt, spin, i, c.Len())
				}
			}
			for i := 0; i < 3; i++ {
				for j := i + 1; j < 3; j++ {
					if d := cols[i].Dot(cols[j]); !near(d, 0) {
						t.Fatalf("tilt=%.2f spin=%.2f: columns %d,%d dot %f", tilt, spin, i, j, d)
					}
				}
			}
			if det := m.Mat3().Det(); !near(det, 1) {
				t.Fatalf("tilt=%.2f spin=%.2f: determinant %f", tilt, spin, det)
			}
		}
	}
}

func TestTiltSpinUpColumn(t *testing.T) {
	tilt, spin := Rad(23.44), 1.3
	up := TiltSpin(tilt, spin).Col(1).Vec3()
	want := V(math.Sin(spin)*math.Sin(tilt), math.Cos(tilt), -math.Cos(spin)*math.Sin(tilt))
	if !up.ApproxEqualThreshold(want, eps) {
		t.Errorf("up column = %v, want %v", up, want)
	}
}

func TestTiltSpinMatchesComposedRotations(t *testing.T) {
	tilt, spin := 0.466, 2.2
	fused := TiltSpin(tilt, spin)
	composed := mgl32.HomogRotate3DY(float32(-spin)).Mul4(mgl32.HomogRotate3DX(float32(-tilt)))
	if !fused.ApproxEqualThreshold(composed, eps) {
		t.Errorf("fused\n%v\n!= composed\n%v", fused, composed)
	}
}

func TestTiltSpinZeroIsIdentity(t *testing.T) {
	if m := TiltSpin(0, 0); !m.ApproxEqualThreshold(mgl32.Ident4(), eps) {
		t.Errorf("TiltSpin(0,0) = %v", m)
	}
}

func TestIncline(t *testing.T) {
	p := Incline(3, 4, Rad(30))
	if !near(p.X(), 3) || !near(p.Y(), -2) || !near(p.Z(), float32(4*math.Cos(Rad(30)))) {
		t.Errorf("Incline = %v", p)
	}
	// Distance from the origin is preserved.
	if !near(p.Len(), 5) {
		t.Errorf("inclined length %f, want 5", p.Len())
	}
}

func TestComposeOrder(t *testing.T) {
	tr := mgl32.Translate3D(1, 2, 3)
	sc := mgl32.Scale3D(2, 2, 2)
	got := Transform(Compose(tr, sc), mgl32.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl32.Vec3{3, 2, 3}, eps) {
		t.Errorf("translate*scale applied to x = %v, want (3,2,3)", got)
	}
	if m := Compose(); m != mgl32.Ident4() {
		t.Errorf("empty Compose = %v", m)
	}
}

func TestBasisColumns(t *testing.T) {
	x, y, z := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}
	m := Basis(x, y, z)
	if m.Col(0).Vec3() != x || m.Col(1).Vec3() != y || m.Col(2).Vec3() != z {
		t.Errorf("Basis columns mismatch: %v", m)
	}
}

func TestProject(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)

	center := Project(mgl32.Vec3{}, view, proj, 1280, 720)
	if !center.Visible {
		t.Fatal("origin should be visible")
	}
	if !near(center.X, 640) || !near(center.Y, 360) {
		t.Errorf("origin projected to (%f, %f), want (640, 360)", center.X, center.Y)
	}

	up := Project(mgl32.Vec3{0, 1, 0}, view, proj, 1280, 720)
	if up.Y >= center.Y {
		t.Errorf("point above origin should project higher on screen: %f >= %f", up.Y, center.Y)
	}

	behind := Project(mgl32.Vec3{0, 0, 20}, view, proj, 1280, 720)
	if behind.Visible {
		t.Errorf("point behind the camera reported visible (depth %f)", behind.Depth)
	}

	beyond := Project(mgl32.Vec3{0, 0, -200}, view, proj, 1280, 720)
	if beyond.Visible {
		t.Errorf("point beyond far plane reported visible (depth %f)", beyond.Depth)
	}
}
