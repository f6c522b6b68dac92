package frame

import (
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/stretchr/testify/assert"
)

func TestMovePointerFlipsY(t *testing.T) {
	s := New(800, 600)
	s.MovePointer(100, 50)
	assert.Equal(t, box2d.MakeB2Vec2(100, 550), s.Pointer)
}

func TestMovePointerKeepsLatest(t *testing.T) {
	s := New(320, 240)
	moves := [][2]int{{0, 0}, {319, 239}, {17, 200}, {160, 120}}
	for _, m := range moves {
		s.MovePointer(m[0], m[1])
		assert.Equal(t, box2d.MakeB2Vec2(float64(m[0]), float64(240-m[1])), s.Pointer)
	}
	assert.Equal(t, box2d.MakeB2Vec2(160, 120), s.Pointer)
}

func TestAdvanceSumsDeltas(t *testing.T) {
	s := New(800, 600)
	deltas := []float64{0.016, 0.017, 0.5, 0, 1e-9, 0.033}
	var want float64
	for _, d := range deltas {
		s.Advance(d)
		want += d
	}
	assert.Equal(t, want, s.Elapsed)
}

func TestAdvanceTenFrames(t *testing.T) {
	s := New(800, 600)
	for i := 0; i < 10; i++ {
		s.Advance(0.016)
	}
	assert.InDelta(t, 0.16, s.Elapsed, 1e-12)
}

func TestAdvanceIgnoresNegative(t *testing.T) {
	s := New(800, 600)
	s.Advance(1)
	s.Advance(-0.5)
	assert.Equal(t, 1.0, s.Elapsed)
}

func TestResizeRefreshesResolution(t *testing.T) {
	s := New(800, 600)
	s.Resize(1024, 768)
	assert.Equal(t, box2d.MakeB2Vec2(1024, 768), s.Resolution())
	// nothing moved yet, the pointer stays at the origin
	assert.Equal(t, box2d.B2Vec2{}, s.Pointer)
}

func TestResizeReflipsStillPointer(t *testing.T) {
	s := New(800, 600)
	s.MovePointer(10, 10)
	assert.Equal(t, box2d.MakeB2Vec2(10, 590), s.Pointer)

	// the cursor is still 10px from the top of the taller window
	s.Resize(1024, 768)
	assert.Equal(t, box2d.MakeB2Vec2(10, 758), s.Pointer)

	// shrinking past the cursor pins it to the edge
	s.Resize(5, 5)
	assert.Equal(t, box2d.MakeB2Vec2(5, 0), s.Pointer)
}

func TestMovePointerClampsToWindow(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want box2d.B2Vec2
	}{
		{"left and below", -20, 700, box2d.MakeB2Vec2(0, 0)},
		{"right and above", 900, -50, box2d.MakeB2Vec2(800, 600)},
		{"corners are inside", 800, 0, box2d.MakeB2Vec2(800, 600)},
		{"inside", 400, 300, box2d.MakeB2Vec2(400, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(800, 600)
			s.MovePointer(tt.x, tt.y)
			assert.Equal(t, tt.want, s.Pointer)
			assert.True(t, s.Pointer.X >= 0 && s.Pointer.X <= 800 && s.Pointer.Y >= 0 && s.Pointer.Y <= 600,
				"pointer %v outside 800x600", s.Pointer)
		})
	}
}
