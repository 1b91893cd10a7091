// Package geometry builds the static vertex buffers drawn every frame:
// a unit UV sphere, flat annular rings and closed orbit polylines.
// Buffers are built once at startup and never mutated afterwards.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxIndexedVertices is the largest vertex count addressable by uint16 indices.
const maxIndexedVertices = 1 << 16

// Mesh is an indexed triangle mesh with interleaving left to the backend.
type Mesh struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	TexCoords []float32 // uv per vertex
	Indices   []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// IndexCount returns the number of indices in the mesh.
func (m Mesh) IndexCount() int {
	return len(m.Indices)
}

// Path is a closed polyline drawn as a line loop.
type Path struct {
	Positions []float32 // xyz per vertex
}

// VertexCount returns the number of vertices in the loop.
func (p Path) VertexCount() int {
	return len(p.Positions) / 3
}

// Sphere generates a unit UV sphere. Triangles wind counter-clockwise when
// seen from outside. Tessellation is reduced until the vertex count fits
// 16-bit indices.
func Sphere(segments, rings int) Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	for (segments+1)*(rings+1) > maxIndexedVertices {
		segments /= 2
		rings /= 2
	}

	n := (segments + 1) * (rings + 1)
	m := Mesh{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		TexCoords: make([]float32, 0, n*2),
		Indices:   make([]uint16, 0, rings*segments*6),
	}

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2 * math.Pi / float64(segments)
			sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

			x := float32(cosPhi * sinTheta)
			y := float32(cosTheta)
			z := float32(sinPhi * sinTheta)

			m.Positions = append(m.Positions, x, y, z)
			m.Normals = append(m.Normals, x, y, z)
			m.TexCoords = append(m.TexCoords, float32(seg)/float32(segments), float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint16(ring*(segments+1) + seg)
			next := current + uint16(segments) + 1

			m.Indices = append(m.Indices, current, current+1, next)
			m.Indices = append(m.Indices, current+1, next+1, next)
		}
	}

	return m
}

// Ring generates a flat annulus in the xz plane facing +y. The u texture
// coordinate runs from the inner edge (0) to the outer edge (1).
func Ring(inner, outer float32, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	if inner > outer {
		inner, outer = outer, inner
	}
	for (segments+1)*2 > maxIndexedVertices {
		segments /= 2
	}

	n := (segments + 1) * 2
	m := Mesh{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		TexCoords: make([]float32, 0, n*2),
		Indices:   make([]uint16, 0, segments*6),
	}

	for i := 0; i <= segments; i++ {
		a := float64(i) * 2 * math.Pi / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		v := float32(i) / float32(segments)

		m.Positions = append(m.Positions, inner*c, 0, inner*s, outer*c, 0, outer*s)
		m.Normals = append(m.Normals, 0, 1, 0, 0, 1, 0)
		m.TexCoords = append(m.TexCoords, 0, v, 1, v)
	}

	for i := 0; i < segments; i++ {
		in := uint16(i * 2)
		out := in + 1
		m.Indices = append(m.Indices, in, in+2, out)
		m.Indices = append(m.Indices, out, in+2, out+2)
	}

	return m
}

// OrbitPath samples a closed curve at segments evenly spaced angles in
// [0, 2*pi). The first point is not repeated; the loop closes itself.
func OrbitPath(segments int, at func(theta float64) mgl32.Vec3) Path {
	if segments < 3 {
		segments = 3
	}
	p := Path{Positions: make([]float32, 0, segments*3)}
	for i := 0; i < segments; i++ {
		pt := at(float64(i) * 2 * math.Pi / float64(segments))
		p.Positions = append(p.Positions, pt[0], pt[1], pt[2])
	}
	return p
}
