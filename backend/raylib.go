// Package backend implements renderer.Backend on raylib's rlgl layer.
//
// Meshes are drawn straight from their vertex arrays so the body program and
// bound texture units persist between draws; raylib's DrawMesh would reset
// both on every call. Lines and sprites go through the immediate-mode batch.
package backend

import (
	"fmt"
	"math"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/geometry"
	"github.com/pthm-cable/orrery/renderer"
)

type mesh struct {
	rl      rl.Mesh
	indices int32
}

// Raylib is a renderer.Backend. Create it after the window is open.
type Raylib struct {
	shaders map[renderer.Program]rl.Shader
	current rl.Shader

	meshes []mesh
	paths  []geometry.Path

	view mgl32.Mat4
}

// NewRaylib creates a backend with no resources.
func NewRaylib() *Raylib {
	return &Raylib{shaders: map[renderer.Program]rl.Shader{}}
}

// LoadProgram compiles a vertex/fragment shader pair from disk.
func (r *Raylib) LoadProgram(vsPath, fsPath string) (renderer.Program, error) {
	sh := rl.LoadShader(vsPath, fsPath)
	if sh.ID == 0 {
		return 0, fmt.Errorf("loading shader %s, %s: compile or link failed", vsPath, fsPath)
	}
	p := renderer.Program(sh.ID)
	r.shaders[p] = sh
	return p, nil
}

// UploadMesh copies m to a GPU vertex array. The Go slices are pinned only
// for the duration of the upload.
func (r *Raylib) UploadMesh(m geometry.Mesh) renderer.MeshHandle {
	var pin runtime.Pinner
	defer pin.Unpin()

	rm := rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.IndexCount() / 3),
	}
	if len(m.Positions) > 0 {
		pin.Pin(&m.Positions[0])
		rm.Vertices = &m.Positions[0]
	}
	if len(m.Normals) > 0 {
		pin.Pin(&m.Normals[0])
		rm.Normals = &m.Normals[0]
	}
	if len(m.TexCoords) > 0 {
		pin.Pin(&m.TexCoords[0])
		rm.Texcoords = &m.TexCoords[0]
	}
	if len(m.Indices) > 0 {
		pin.Pin(&m.Indices[0])
		rm.Indices = &m.Indices[0]
	}
	rl.UploadMesh(&rm, false)

	// The CPU arrays belong to Go; drop them so nothing on the C side frees them.
	rm.Vertices, rm.Normals, rm.Texcoords, rm.Indices = nil, nil, nil, nil

	r.meshes = append(r.meshes, mesh{rl: rm, indices: int32(m.IndexCount())})
	return renderer.MeshHandle(len(r.meshes) - 1)
}

// UploadPath keeps the polyline CPU-side; it is streamed through the line
// batch each frame.
func (r *Raylib) UploadPath(p geometry.Path) renderer.PathHandle {
	r.paths = append(r.paths, p)
	return renderer.PathHandle(len(r.paths) - 1)
}

func (r *Raylib) UseProgram(p renderer.Program) {
	sh, ok := r.shaders[p]
	if !ok {
		return
	}
	r.current = sh
	rl.EnableShader(sh.ID)
}

func (r *Raylib) UniformLocation(p renderer.Program, name string) renderer.Location {
	sh, ok := r.shaders[p]
	if !ok {
		return renderer.NoLocation
	}
	return renderer.Location(rl.GetShaderLocation(sh, name))
}

func (r *Raylib) SetFloat(loc renderer.Location, v float32) {
	rl.SetShaderValue(r.current, int32(loc), []float32{v}, rl.ShaderUniformFloat)
}

// SetInt passes the int's bits through the float slice raylib expects.
func (r *Raylib) SetInt(loc renderer.Location, v int32) {
	rl.SetShaderValue(r.current, int32(loc), []float32{math.Float32frombits(uint32(v))}, rl.ShaderUniformInt)
}

func (r *Raylib) SetVec3(loc renderer.Location, v mgl32.Vec3) {
	rl.SetShaderValue(r.current, int32(loc), v[:], rl.ShaderUniformVec3)
}

func (r *Raylib) SetVec4(loc renderer.Location, v mgl32.Vec4) {
	rl.SetShaderValue(r.current, int32(loc), v[:], rl.ShaderUniformVec4)
}

func (r *Raylib) SetVec4Array(loc renderer.Location, v []mgl32.Vec4) {
	if len(v) == 0 {
		return
	}
	flat := make([]float32, 0, 4*len(v))
	for _, e := range v {
		flat = append(flat, e[:]...)
	}
	rl.SetShaderValueV(r.current, int32(loc), flat, rl.ShaderUniformVec4, int32(len(v)))
}

func (r *Raylib) SetMat4(loc renderer.Location, m mgl32.Mat4) {
	rl.SetShaderValueMatrix(r.current, int32(loc), toMatrix(m))
}

func (r *Raylib) BindTexture(unit int, t renderer.Texture) {
	rl.ActiveTextureSlot(int32(unit))
	rl.EnableTexture(uint32(t))
}

// BeginFrame enters 3D mode, then replaces raylib's camera matrices with
// the orbit camera's so batched lines and sprites share its clip space.
func (r *Raylib) BeginFrame(view, proj mgl32.Mat4) {
	r.view = view
	rl.BeginMode3D(rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 1),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(toMatrix(proj))
	rl.SetMatrixModelview(toMatrix(view))
}

func (r *Raylib) EndFrame() {
	rl.EndMode3D()
}

func (r *Raylib) BeginMeshes() {
	rl.DrawRenderBatchActive()
}

// EndMeshes releases the vertex array and program so the batch can resume.
func (r *Raylib) EndMeshes() {
	rl.DisableVertexArray()
	rl.ActiveTextureSlot(0)
	rl.DisableShader()
}

func (r *Raylib) DrawMesh(h renderer.MeshHandle) {
	if int(h) < 0 || int(h) >= len(r.meshes) {
		return
	}
	m := &r.meshes[h]
	rl.EnableVertexArray(m.rl.VaoID)
	if m.indices > 0 {
		rl.DrawVertexArrayElements(0, m.indices, nil)
	} else {
		rl.DrawVertexArray(0, m.rl.VertexCount)
	}
}

func (r *Raylib) DrawLineLoop(h renderer.PathHandle, color mgl32.Vec4) {
	if int(h) < 0 || int(h) >= len(r.paths) {
		return
	}
	pos := r.paths[h].Positions
	n := len(pos) / 3
	if n < 2 {
		return
	}
	c := toColor(color)
	rl.Begin(rl.Lines)
	rl.Color4ub(c.R, c.G, c.B, c.A)
	for i := range n {
		j := (i + 1) % n
		rl.Vertex3f(pos[3*i], pos[3*i+1], pos[3*i+2])
		rl.Vertex3f(pos[3*j], pos[3*j+1], pos[3*j+2])
	}
	rl.End()
}

// DrawSprites emits one camera-facing quad per point. The camera basis comes
// from the rows of the view matrix.
func (r *Raylib) DrawSprites(s *renderer.Sprites) {
	v := r.view
	right := mgl32.Vec3{v[0], v[4], v[8]}
	up := mgl32.Vec3{v[1], v[5], v[9]}

	base := toColor(s.Color)
	rl.Begin(rl.Quads)
	for i := 0; i < s.Count; i++ {
		p := mgl32.Vec3{s.Positions[3*i], s.Positions[3*i+1], s.Positions[3*i+2]}
		size := s.Size
		if s.Sizes != nil {
			size = s.Sizes[i]
		}
		a := base.A
		if s.Alphas != nil {
			a = uint8(clamp01(s.Alphas[i]) * 255)
		}
		rx, ux := right.Mul(size*0.5), up.Mul(size*0.5)
		c0 := p.Sub(rx).Sub(ux)
		c1 := p.Add(rx).Sub(ux)
		c2 := p.Add(rx).Add(ux)
		c3 := p.Sub(rx).Add(ux)

		rl.Color4ub(base.R, base.G, base.B, a)
		rl.Vertex3f(c0[0], c0[1], c0[2])
		rl.Vertex3f(c1[0], c1[1], c1[2])
		rl.Vertex3f(c2[0], c2[1], c2[2])
		rl.Vertex3f(c3[0], c3[1], c3[2])
	}
	rl.End()
	// Flush under the caller's blend and depth state.
	rl.DrawRenderBatchActive()
}

func (r *Raylib) SetCulling(enabled bool) {
	if enabled {
		rl.EnableBackfaceCulling()
	} else {
		rl.DisableBackfaceCulling()
	}
}

func (r *Raylib) SetAdditive(enabled bool) {
	if enabled {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.EndBlendMode()
	}
}

func (r *Raylib) SetDepthWrite(enabled bool) {
	if enabled {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
}

// Unload releases every GPU resource the backend created.
func (r *Raylib) Unload() {
	for _, m := range r.meshes {
		rl.UnloadVertexArray(m.rl.VaoID)
	}
	r.meshes = nil
	for _, sh := range r.shaders {
		rl.UnloadShader(sh)
	}
	clear(r.shaders)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout, whose
// field Mi holds the same element as mgl32 index i.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toColor(c mgl32.Vec4) rl.Color {
	return rl.Color{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}

var _ renderer.Backend = (*Raylib)(nil)
