// Package camera provides an orbit camera that circles a focus point and
// eases between focus targets.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/vecmath"
)

// NoFocus is the focus id of a camera not following any body.
const NoFocus = -1

// maxPitch keeps the eye off the poles where LookAt degenerates.
const maxPitch = 89 * math.Pi / 180

// Options configures a new camera.
type Options struct {
	ViewportW, ViewportH float32
	FovDeg               float32
	Near, Far            float32
	MinZoom, MaxZoom     float32
	// ZoomPerRadius is the viewing distance per unit of target radius.
	ZoomPerRadius float32
	// TransitionSeconds is the length of a focus change.
	TransitionSeconds float32
	YawDeg, PitchDeg  float32
	InitialZoom       float32
}

// Camera orbits a focus point at distance Zoom.
type Camera struct {
	// Focus is the point looked at, in world coordinates
	Focus   mgl32.Vec3
	FocusID int

	// Zoom is the eye distance from the focus
	Zoom float32

	// Orbit angles in radians
	Yaw, Pitch float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	FovY, Near, Far float32

	// Zoom constraints
	MinZoom, MaxZoom float32
	ZoomPerRadius    float32

	Transition Transition

	initial Options
}

// New creates a camera looking at the origin.
func New(o Options) *Camera {
	c := &Camera{
		FocusID:       NoFocus,
		ViewportW:     o.ViewportW,
		ViewportH:     o.ViewportH,
		FovY:          mgl32.DegToRad(o.FovDeg),
		Near:          o.Near,
		Far:           o.Far,
		MinZoom:       o.MinZoom,
		MaxZoom:       o.MaxZoom,
		ZoomPerRadius: o.ZoomPerRadius,
		initial:       o,
	}
	c.Transition.Duration = o.TransitionSeconds
	c.Reset()
	return c
}

// Reset returns the camera to its initial orbit around the origin.
func (c *Camera) Reset() {
	c.Transition.Active = false
	c.Focus = mgl32.Vec3{}
	c.FocusID = NoFocus
	c.Yaw = mgl32.DegToRad(c.initial.YawDeg)
	c.Pitch = clamp(mgl32.DegToRad(c.initial.PitchDeg), -maxPitch, maxPitch)
	c.SetZoom(c.initial.InitialZoom)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the eye distance, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current distance by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Rotate orbits the eye around the focus. Pitch stops short of the poles.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 2*math.Pi))
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	dir := mgl32.Vec3{
		cp * float32(math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Sin(float64(c.Yaw))),
	}
	return c.Focus.Add(dir.Mul(c.Zoom))
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Focus, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// WorldToScreen projects a world point to screen pixels.
func (c *Camera) WorldToScreen(p mgl32.Vec3) vecmath.ScreenPoint {
	return vecmath.Project(p, c.View(), c.Projection(), c.ViewportW, c.ViewportH)
}

// TargetZoom is the viewing distance for a body of the given radius.
func (c *Camera) TargetZoom(radius float32) float32 {
	return clamp(radius*c.ZoomPerRadius, c.MinZoom, c.MaxZoom)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
