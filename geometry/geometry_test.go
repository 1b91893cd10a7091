package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vertex(buf []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

func TestSphereCounts(t *testing.T) {
	m := Sphere(32, 16)
	if got, want := m.VertexCount(), 33*17; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.IndexCount(), 32*16*6; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	if len(m.Normals) != len(m.Positions) {
		t.Errorf("normals %d != positions %d", len(m.Normals), len(m.Positions))
	}
	if len(m.TexCoords) != m.VertexCount()*2 {
		t.Errorf("texcoords %d, want %d", len(m.TexCoords), m.VertexCount()*2)
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSphereUnitRadius(t *testing.T) {
	m := Sphere(24, 12)
	for i := 0; i < m.VertexCount(); i++ {
		p := vertex(m.Positions, i)
		if math.Abs(float64(p.Len()-1)) > 1e-5 {
			t.Fatalf("vertex %d at radius %f", i, p.Len())
		}
		if n := vertex(m.Normals, i); !n.ApproxEqualThreshold(p, 1e-6) {
			t.Fatalf("vertex %d normal %v != position %v", i, n, p)
		}
	}
}

func TestSphereOutwardWinding(t *testing.T) {
	m := Sphere(16, 8)
	for i := 0; i < len(m.Indices); i += 3 {
		a := vertex(m.Positions, int(m.Indices[i]))
		b := vertex(m.Positions, int(m.Indices[i+1]))
		c := vertex(m.Positions, int(m.Indices[i+2]))
		n := b.Sub(a).Cross(c.Sub(a))
		// Pole triangles collapse to zero area.
		if n.Len() < 1e-6 {
			continue
		}
		centroid := a.Add(b).Add(c)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestSphereClampsTessellation(t *testing.T) {
	m := Sphere(1024, 1024)
	if m.VertexCount() > maxIndexedVertices {
		t.Errorf("vertex count %d exceeds 16-bit index range", m.VertexCount())
	}
	if m := Sphere(1, 1); m.IndexCount() != 3*2*6 {
		t.Errorf("degenerate request produced %d indices", m.IndexCount())
	}
}

func TestRing(t *testing.T) {
	m := Ring(1.5, 2.5, 64)
	if got, want := m.VertexCount(), 65*2; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.IndexCount(), 64*6; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := vertex(m.Positions, i)
		if p.Y() != 0 {
			t.Fatalf("vertex %d off plane: %v", i, p)
		}
		want := float32(1.5)
		if i%2 == 1 {
			want = 2.5
		}
		if math.Abs(float64(p.Len()-want)) > 1e-5 {
			t.Fatalf("vertex %d radius %f, want %f", i, p.Len(), want)
		}
		if u := m.TexCoords[i*2]; u != float32(i%2) {
			t.Fatalf("vertex %d u = %f", i, u)
		}
	}
}

func TestRingSwapsInvertedRadii(t *testing.T) {
	m := Ring(3, 1, 8)
	if inner := vertex(m.Positions, 0).Len(); math.Abs(float64(inner-1)) > 1e-5 {
		t.Errorf("inner edge radius %f, want 1", inner)
	}
}

func TestOrbitPath(t *testing.T) {
	var thetas []float64
	p := OrbitPath(90, func(theta float64) mgl32.Vec3 {
		thetas = append(thetas, theta)
		return mgl32.Vec3{float32(10 * math.Cos(theta)), 0, float32(10 * math.Sin(theta))}
	})
	if p.VertexCount() != 90 {
		t.Fatalf("vertex count = %d, want 90", p.VertexCount())
	}
	if thetas[0] != 0 {
		t.Errorf("first sample at %f, want 0", thetas[0])
	}
	if last := thetas[len(thetas)-1]; last >= 2*math.Pi {
		t.Errorf("last sample at %f repeats the start", last)
	}
	first, last := vertex(p.Positions, 0), vertex(p.Positions, 89)
	if first.ApproxEqualThreshold(last, 1e-4) {
		t.Error("loop duplicates its first vertex")
	}
}
