package host

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hherman1/raytracer/config"
	"github.com/hherman1/raytracer/frame"
	"github.com/hherman1/raytracer/render"
)

// Window is what the host needs from the OS window besides the drawing surface.
type Window interface {
	// Size in pixels the window opens with
	Size() (width, height int)
	SetTitle(title string)
	// Frames per second as measured by the engine
	FPS() float64
}

type ebitenWindow struct{}

func (ebitenWindow) Size() (int, int)      { return ebiten.WindowSize() }
func (ebitenWindow) SetTitle(title string) { ebiten.SetWindowTitle(title) }
func (ebitenWindow) FPS() float64          { return ebiten.ActualFPS() }

type phase int

const (
	uninitialized phase = iota
	running
)

var ErrNotInitialized = errors.New("host not initialized")

// Options wires a Host to its collaborators. Zero values pick the ebiten backed implementations.
type Options struct {
	Renderer *render.Renderer
	Poller   Poller
	Window   Window
	Clock    func() time.Time
	Logger   *slog.Logger

	// New shader sources to compile on the game thread, typically from Watch
	Reloads <-chan []byte

	// Listeners after the host in the input chain
	Listeners []Listener
}

// Host is the ebiten game: it owns the window, turns the frame callback into frame deltas and hands the frame state
// to the renderer once per draw.
type Host struct {
	cfg   config.Window
	state frame.State
	phase phase

	r     *render.Renderer
	in    *Input
	quit  *quitListener
	win   Window
	clock func() time.Time
	last  time.Time
	log   *slog.Logger

	reloads <-chan []byte

	// Compiler log of the last failed compile, cleared by a successful one
	diagnostics string
}

func New(cfg config.Window, o Options) *Host {
	h := &Host{
		cfg:     cfg,
		r:       o.Renderer,
		win:     o.Window,
		clock:   o.Clock,
		log:     o.Logger,
		reloads: o.Reloads,
		quit:    &quitListener{},
	}
	if h.r == nil {
		h.r = render.New(nil)
	}
	if h.win == nil {
		h.win = ebitenWindow{}
	}
	if h.clock == nil {
		h.clock = time.Now
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	chain := append(append([]Listener{}, o.Listeners...), h.quit)
	h.in = NewInput(o.Poller, chain...)
	return h
}

// Initialize reads the window size, compiles src and makes the host the first input listener. It always leaves the
// host running; a compile failure is returned as a wrapped *render.CompileError and the caller decides whether to
// carry on without a program.
func (h *Host) Initialize(src []byte) error {
	if h.phase == running {
		return errors.New("host already initialized")
	}
	w, hh := h.win.Size()
	if w <= 0 || hh <= 0 {
		// no window yet to ask
		w, hh = h.cfg.Width, h.cfg.Height
	}
	h.state = frame.New(w, hh)
	h.in.Register(h)
	h.phase = running
	h.log.Debug("host initialized", "width", w, "height", hh)

	if err := h.r.Load(src); err != nil {
		h.noteCompileError(err)
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

func (h *Host) noteCompileError(err error) {
	var ce *render.CompileError
	if errors.As(err, &ce) {
		h.diagnostics = ce.Diagnostics
	}
}

// Diagnostics is the compiler log of the most recent failed compile, or empty.
func (h *Host) Diagnostics() string { return h.diagnostics }

// State is the frame state the next draw will use.
func (h *Host) State() frame.State { return h.state }

func (h *Host) Update() error {
	if h.phase != running {
		return ErrNotInitialized
	}
	// the first frame starts the clock, window creation doesn't count as elapsed time
	now := h.clock()
	var dt float64
	if !h.last.IsZero() {
		dt = now.Sub(h.last).Seconds()
	}
	h.last = now
	h.OnFrame(dt)
	if h.quit.requested {
		return ebiten.Termination
	}
	return nil
}

// OnFrame advances the clock by dt seconds, delivers pending input and applies pending shader reloads.
func (h *Host) OnFrame(dt float64) {
	h.state.Advance(dt)
	h.in.Dispatch()
	h.reload()
}

// reload compiles every source waiting on the reload channel without blocking.
func (h *Host) reload() {
	for h.reloads != nil {
		select {
		case src, ok := <-h.reloads:
			if !ok {
				h.reloads = nil
				return
			}
			if err := h.r.Load(src); err != nil {
				h.noteCompileError(err)
				h.log.Error("shader reload failed, keeping previous shader", "diagnostics", h.diagnostics)
				continue
			}
			h.diagnostics = ""
			h.log.Info("shader reloaded")
		default:
			return
		}
	}
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.draw(screen)
	if !h.r.Bound() && h.diagnostics != "" {
		ebitenutil.DebugPrint(screen, h.diagnostics)
	}
}

func (h *Host) draw(t render.Target) {
	h.r.Draw(t, &h.state)
	h.win.SetTitle(strconv.Itoa(int(h.win.FPS())))
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if h.cfg.Resolution == config.ResolutionFixed {
		return h.state.Width, h.state.Height
	}
	if outsideWidth != h.state.Width || outsideHeight != h.state.Height {
		h.log.Debug("window resized", "width", outsideWidth, "height", outsideHeight)
		h.state.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close releases GPU resources held by the renderer.
func (h *Host) Close() {
	h.log.Debug("host closing", "renderer", h.r.String())
	h.r.Dispose()
}

// The host listens to input only to track the pointer. Nothing is ever consumed.

func (h *Host) PointerMoved(x, y int) bool {
	h.state.MovePointer(x, y)
	return false
}

func (h *Host) PointerDown(x, y int, button ebiten.MouseButton) bool { return false }
func (h *Host) PointerUp(x, y int, button ebiten.MouseButton) bool   { return false }
func (h *Host) KeyDown(key ebiten.Key) bool                          { return false }
func (h *Host) KeyUp(key ebiten.Key) bool                            { return false }
func (h *Host) Scrolled(dx, dy float64) bool                         { return false }
