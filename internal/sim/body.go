package sim

import (
	"math"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
)

// Body is the kinematic part of an entity. Y grows downward for free-roaming
// actors; for grounded fighters Y is measured from the floor, so 0 is
// standing and negative values are airborne.
type Body struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Facing float64 // +1 right, -1 left

	Grounded bool
	Jumps    int // air-jump charges spent since last landing
}

// Box returns the body's bounding box.
func (b Body) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// GroundPhysics parameterises the fighter step.
type GroundPhysics struct {
	Gravity  float64 // added to VY each frame while airborne
	Friction float64 // VX multiplier applied each frame
	MinX     float64 // arena walls
	MaxX     float64
}

// StepGrounded advances a fighter body by one frame: gravity while airborne,
// vertical integration with a floor at y=0, horizontal integration with
// friction, then clamping into [MinX, MaxX].
func StepGrounded(b *Body, p GroundPhysics) {
	if !b.Grounded {
		b.VY += p.Gravity
	}
	b.Y += b.VY

	if b.Y >= 0 {
		b.Y = 0
		b.VY = 0
		b.Grounded = true
		b.Jumps = 0
	} else {
		b.Grounded = false
	}

	b.X += b.VX
	b.VX *= p.Friction
	b.X = core.ClampF(b.X, p.MinX, p.MaxX)
}

// FaceToward points the body at targetX.
func FaceToward(b *Body, targetX float64) {
	if b.X < targetX {
		b.Facing = 1
	} else {
		b.Facing = -1
	}
}

// StepBouncing advances a free-roaming body and reflects it off the edges
// of bounds. The body is clamped so its box never leaves bounds.
func StepBouncing(b *Body, bounds core.Box) {
	b.X += b.VX
	b.Y += b.VY

	maxX := bounds.Right() - b.W
	maxY := bounds.Bottom() - b.H
	if b.X <= bounds.X || b.X >= maxX {
		b.VX = -b.VX
		b.X = core.ClampF(b.X, bounds.X, math.Max(bounds.X, maxX))
	}
	if b.Y <= bounds.Y || b.Y >= maxY {
		b.VY = -b.VY
		b.Y = core.ClampF(b.Y, bounds.Y, math.Max(bounds.Y, maxY))
	}
}

// MoveWithin shifts the body by (dx, dy) and keeps its box inside bounds.
func MoveWithin(b *Body, dx, dy float64, bounds core.Box) {
	b.X = core.ClampF(b.X+dx, bounds.X, math.Max(bounds.X, bounds.Right()-b.W))
	b.Y = core.ClampF(b.Y+dy, bounds.Y, math.Max(bounds.Y, bounds.Bottom()-b.H))
}

// Distance returns the horizontal distance between two bodies' anchors.
func Distance(a, b Body) float64 {
	return math.Abs(a.X - b.X)
}
