package frame

import "github.com/ByteArena/box2d"

// Screen units: (0, 0) is the top left of the window and Y grows downwards, as ebiten reports them.
// Shader units: (0, 0) is the bottom left and Y grows upwards. Everything stored in a State is in shader units.

// State is everything the shader learns about the world on a given frame. It's owned by the host loop and handed
// to the renderer by pointer, never shared across goroutines.
type State struct {
	// Drawing size in pixels
	Width, Height int

	// Seconds accumulated from frame deltas since startup
	Elapsed float64

	// Most recent cursor position, Y measured from the bottom of the window
	Pointer box2d.B2Vec2

	// last cursor position in screen units, kept to re-flip Pointer on resize
	cx, cy  int
	tracked bool
}

// Creates the state for a window of the given size with the pointer at the origin.
func New(width, height int) State {
	return State{Width: width, Height: height}
}

// Advance accumulates a frame delta. Negative deltas (a clock going backwards) are dropped so that Elapsed never
// decreases.
func (s *State) Advance(dt float64) {
	if dt < 0 {
		return
	}
	s.Elapsed += dt
}

// MovePointer records a pointer position given in screen units. ebiten keeps reporting the cursor after it leaves
// the window, so the position is clamped to the window's edges.
func (s *State) MovePointer(x, y int) {
	s.cx, s.cy, s.tracked = x, y, true
	s.flip()
}

func (s *State) flip() {
	x := clamp(s.cx, 0, s.Width)
	y := clamp(s.Height-s.cy, 0, s.Height)
	s.Pointer = box2d.MakeB2Vec2(float64(x), float64(y))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Resize changes the drawing size for all frames after this call. A cursor that hasn't moved stays where it is on
// screen, so its flipped position follows the new height.
func (s *State) Resize(width, height int) {
	s.Width = width
	s.Height = height
	if s.tracked {
		s.flip()
	}
}

func (s *State) Resolution() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(float64(s.Width), float64(s.Height))
}
