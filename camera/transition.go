package camera

import "github.com/go-gl/mathgl/mgl32"

// State of the focus state machine.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Transition eases zoom and focus from a start to a moving target.
type Transition struct {
	Active   bool
	Progress float32 // [0, 1]
	Duration float32 // seconds

	StartZoom, TargetZoom float32
	StartPos, TargetPos   mgl32.Vec3
	StartID, TargetID     int
}

// Ease is the quadratic ease-in-out curve.
func Ease(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// State reports whether a focus change is under way.
func (c *Camera) State() State {
	if c.Transition.Active {
		return Transitioning
	}
	return Idle
}

// FocusOn starts a transition to body id of the given radius at pos. A call
// during a transition restarts from the current interpolated zoom and focus.
func (c *Camera) FocusOn(id int, radius float32, pos mgl32.Vec3) {
	tr := &c.Transition
	tr.StartZoom = c.Zoom
	tr.StartPos = c.Focus
	tr.StartID = c.FocusID
	tr.TargetZoom = c.TargetZoom(radius)
	tr.TargetPos = pos
	tr.TargetID = id
	tr.Progress = 0
	tr.Active = true
	if tr.Duration <= 0 {
		c.finish()
	}
}

// Update advances a transition by dt seconds. targetPos is the current
// position of the focus target; the camera follows it when idle too. Pass
// ok=false when no body is focused.
func (c *Camera) Update(dt float32, targetPos mgl32.Vec3, ok bool) {
	tr := &c.Transition
	if !tr.Active {
		if ok && c.FocusID != NoFocus {
			c.Focus = targetPos
		}
		return
	}

	if ok {
		tr.TargetPos = targetPos
	}
	tr.Progress += dt / tr.Duration
	if tr.Progress >= 1 {
		c.finish()
		return
	}

	e := Ease(tr.Progress)
	c.Zoom = tr.StartZoom + (tr.TargetZoom-tr.StartZoom)*e
	c.Focus = tr.StartPos.Add(tr.TargetPos.Sub(tr.StartPos).Mul(e))
}

// finish snaps to the target exactly and returns to Idle.
func (c *Camera) finish() {
	tr := &c.Transition
	tr.Progress = 1
	tr.Active = false
	c.Zoom = tr.TargetZoom
	c.Focus = tr.TargetPos
	c.FocusID = tr.TargetID
}
