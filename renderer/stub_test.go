package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/geometry"
)

// countingBackend records every call so tests can assert on what reached the
// graphics API.
type countingBackend struct {
	uniforms map[string]Location
	names    map[Location]string
	calls    []string
	counts   map[string]int
	meshes   int
	paths    int
}

// newCountingBackend declares every known uniform except those in missing.
func newCountingBackend(missing ...string) *countingBackend {
	b := &countingBackend{
		uniforms: map[string]Location{},
		names:    map[Location]string{},
		counts:   map[string]int{},
	}
	skip := map[string]bool{}
	for _, m := range missing {
		skip[m] = true
	}
	var all []string
	all = append(all,
		UniformModel, UniformView, UniformProjection, UniformBaseColor, UniformViewPos, UniformTime,
		UniformOccluders, UniformOccluderCount, UniformParentOccluder,
		UniformAmbient, UniformUmbraLevel, UniformPenumbraScale,
		UniformTerminatorThreshold, UniformTerminatorBand, UniformNightLevel,
		UniformNightBlendRange, UniformShininess, UniformSpecularStrength, UniformCloudSpeed,
		UniformSunspotScale, UniformSunspotDrift, UniformSunspotThreshold, UniformSunspotDarkness,
	)
	all = append(all, samplerNames[:]...)
	all = append(all, toggleNames[:]...)
	for i, name := range all {
		if skip[name] {
			continue
		}
		b.uniforms[name] = Location(i)
		b.names[Location(i)] = name
	}
	return b
}

func (b *countingBackend) record(kind, detail string) {
	b.counts[kind]++
	if detail == "" {
		b.calls = append(b.calls, kind)
		return
	}
	b.calls = append(b.calls, kind+" "+detail)
}

func (b *countingBackend) reset() {
	b.calls = nil
	b.counts = map[string]int{}
}

// uniformWrites counts writes to one named uniform.
func (b *countingBackend) uniformWrites(name string) int {
	n := 0
	for _, c := range b.calls {
		_, rest, ok := strings.Cut(c, " ")
		if ok && strings.HasPrefix(rest, name+"=") {
			n++
		}
	}
	return n
}

func (b *countingBackend) UploadMesh(m geometry.Mesh) MeshHandle {
	b.meshes++
	return MeshHandle(b.meshes)
}

func (b *countingBackend) UploadPath(p geometry.Path) PathHandle {
	b.paths++
	return PathHandle(b.paths)
}

func (b *countingBackend) UseProgram(p Program) { b.record("program", fmt.Sprint(p)) }

func (b *countingBackend) UniformLocation(p Program, name string) Location {
	if loc, ok := b.uniforms[name]; ok {
		return loc
	}
	return NoLocation
}

func (b *countingBackend) set(kind string, loc Location, v any) {
	if loc == NoLocation {
		panic("write to absent uniform")
	}
	b.record(kind, fmt.Sprintf("%s=%v", b.names[loc], v))
}

func (b *countingBackend) SetFloat(loc Location, v float32)          { b.set("float", loc, v) }
func (b *countingBackend) SetInt(loc Location, v int32)              { b.set("int", loc, v) }
func (b *countingBackend) SetVec3(loc Location, v mgl32.Vec3)        { b.set("vec3", loc, v) }
func (b *countingBackend) SetVec4(loc Location, v mgl32.Vec4)        { b.set("vec4", loc, v) }
func (b *countingBackend) SetVec4Array(loc Location, v []mgl32.Vec4) { b.set("vec4[]", loc, len(v)) }
func (b *countingBackend) SetMat4(loc Location, m mgl32.Mat4)        { b.set("mat4", loc, "m") }

func (b *countingBackend) BindTexture(unit int, t Texture) {
	b.record("bind", fmt.Sprintf("%d:%d", unit, t))
}

func (b *countingBackend) BeginFrame(view, proj mgl32.Mat4)           { b.record("begin-frame", "") }
func (b *countingBackend) EndFrame()                                  { b.record("end-frame", "") }
func (b *countingBackend) BeginMeshes()                               { b.record("begin-meshes", "") }
func (b *countingBackend) EndMeshes()                                 { b.record("end-meshes", "") }
func (b *countingBackend) DrawMesh(m MeshHandle)                      { b.record("mesh", fmt.Sprint(m)) }
func (b *countingBackend) DrawLineLoop(p PathHandle, color mgl32.Vec4) { b.record("lines", fmt.Sprint(p)) }
func (b *countingBackend) DrawSprites(s *Sprites)                     { b.record("sprites", fmt.Sprint(s.Count)) }
func (b *countingBackend) SetCulling(enabled bool)                    { b.record("cull", fmt.Sprint(enabled)) }
func (b *countingBackend) SetAdditive(enabled bool)                   { b.record("additive", fmt.Sprint(enabled)) }
func (b *countingBackend) SetDepthWrite(enabled bool)                 { b.record("depth-write", fmt.Sprint(enabled)) }

// fakeTextures returns slot+100 so binds are easy to read.
type fakeTextures struct{}

func (fakeTextures) Texture(slot TextureSlot) Texture { return Texture(slot + 100) }
