// Package renderer turns a frame's draw lists into graphics-API calls. It never
// talks to the GPU directly: every call goes through Backend, and the
// StateCache in front of it drops redundant texture binds and toggle writes.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/geometry"
)

// Program is a linked shader program owned by the backend.
type Program uint32

// Location is a uniform location. Absent uniforms resolve to NoLocation.
type Location int32

// NoLocation marks a uniform the program does not declare.
const NoLocation Location = -1

// Texture is a GPU texture id. A placeholder is still a valid Texture.
type Texture uint32

// MeshHandle refers to an indexed mesh uploaded once at startup.
type MeshHandle int

// PathHandle refers to an uploaded closed polyline.
type PathHandle int

// TextureSlot is a logical texture name resolved to a handle at startup.
// The zero value means no texture.
type TextureSlot int

// NoTexture is the empty slot.
const NoTexture TextureSlot = 0

// Textures maps logical slots to bindable textures. Implementations return a
// neutral placeholder until the real image is ready, so the result is always
// safe to bind.
type Textures interface {
	Texture(slot TextureSlot) Texture
}

// Sprites is a point field drawn as camera-facing quads. Buffers are owned by
// the caller and rewritten in place every frame.
type Sprites struct {
	Positions []float32 // xyz per sprite
	Sizes     []float32 // per sprite; nil uses Size
	Alphas    []float32 // per sprite; nil uses Color alpha
	Count     int
	Size      float32
	Color     mgl32.Vec4
}

// Backend is the seam between the dispatcher and the graphics API.
type Backend interface {
	UploadMesh(m geometry.Mesh) MeshHandle
	UploadPath(p geometry.Path) PathHandle

	UseProgram(p Program)
	UniformLocation(p Program, name string) Location
	SetFloat(loc Location, v float32)
	SetInt(loc Location, v int32)
	SetVec3(loc Location, v mgl32.Vec3)
	SetVec4(loc Location, v mgl32.Vec4)
	SetVec4Array(loc Location, v []mgl32.Vec4)
	SetMat4(loc Location, m mgl32.Mat4)
	BindTexture(unit int, t Texture)

	// BeginFrame installs the camera for batched line and sprite draws.
	BeginFrame(view, proj mgl32.Mat4)
	EndFrame()
	// BeginMeshes flushes pending batched draws before direct mesh draws.
	// The flush may rebind programs and texture unit 0.
	BeginMeshes()
	EndMeshes()

	DrawMesh(m MeshHandle)
	DrawLineLoop(p PathHandle, color mgl32.Vec4)
	DrawSprites(s *Sprites)

	SetCulling(enabled bool)
	SetAdditive(enabled bool)
	SetDepthWrite(enabled bool)
}
