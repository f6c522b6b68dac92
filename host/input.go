package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Listener receives raw input, in screen units, exactly as ebiten reports it. Each callback returns whether it
// consumed the event; unconsumed events continue down the chain.
type Listener interface {
	PointerMoved(x, y int) bool
	PointerDown(x, y int, button ebiten.MouseButton) bool
	PointerUp(x, y int, button ebiten.MouseButton) bool
	KeyDown(key ebiten.Key) bool
	KeyUp(key ebiten.Key) bool
	Scrolled(dx, dy float64) bool
}

// Poller is the polled input state ebiten exposes through package level functions.
type Poller interface {
	CursorPosition() (x, y int)
	Wheel() (dx, dy float64)
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
	IsMouseButtonJustReleased(button ebiten.MouseButton) bool
}

type ebitenPoller struct{}

func (ebitenPoller) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenPoller) Wheel() (float64, float64)  { return ebiten.Wheel() }
func (ebitenPoller) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}
func (ebitenPoller) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}
func (ebitenPoller) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}
func (ebitenPoller) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

var buttons = []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle}

// Input turns polled state into listener callbacks, once per frame. Single threaded.
type Input struct {
	poll  Poller
	chain []Listener

	// last reported cursor position
	x, y   int
	polled bool

	// scratch space reused across frames
	keys []ebiten.Key
}

func NewInput(p Poller, chain ...Listener) *Input {
	if p == nil {
		p = ebitenPoller{}
	}
	return &Input{poll: p, chain: chain}
}

// Register puts l at the front of the chain.
func (in *Input) Register(l Listener) {
	in.chain = append([]Listener{l}, in.chain...)
}

// offer walks the chain until a listener consumes the event.
func (in *Input) offer(f func(l Listener) bool) {
	for _, l := range in.chain {
		if f(l) {
			return
		}
	}
}

// Dispatch delivers everything that happened since the previous call. Movement is reported first so that button
// and key handlers see the current cursor.
func (in *Input) Dispatch() {
	x, y := in.poll.CursorPosition()
	if !in.polled || x != in.x || y != in.y {
		in.polled = true
		in.x, in.y = x, y
		in.offer(func(l Listener) bool { return l.PointerMoved(x, y) })
	}

	for _, b := range buttons {
		if in.poll.IsMouseButtonJustPressed(b) {
			in.offer(func(l Listener) bool { return l.PointerDown(x, y, b) })
		}
		if in.poll.IsMouseButtonJustReleased(b) {
			in.offer(func(l Listener) bool { return l.PointerUp(x, y, b) })
		}
	}

	in.keys = in.poll.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.offer(func(l Listener) bool { return l.KeyDown(k) })
	}
	in.keys = in.poll.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.offer(func(l Listener) bool { return l.KeyUp(k) })
	}

	if dx, dy := in.poll.Wheel(); dx != 0 || dy != 0 {
		in.offer(func(l Listener) bool { return l.Scrolled(dx, dy) })
	}
}

// quitListener sits at the end of the chain and asks the loop to stop on Escape.
type quitListener struct {
	requested bool
}

func (q *quitListener) PointerMoved(x, y int) bool                           { return false }
func (q *quitListener) PointerDown(x, y int, button ebiten.MouseButton) bool { return false }
func (q *quitListener) PointerUp(x, y int, button ebiten.MouseButton) bool   { return false }
func (q *quitListener) KeyUp(key ebiten.Key) bool                            { return false }
func (q *quitListener) Scrolled(dx, dy float64) bool                         { return false }

func (q *quitListener) KeyDown(key ebiten.Key) bool {
	if key != ebiten.KeyEscape {
		return false
	}
	q.requested = true
	return true
}
