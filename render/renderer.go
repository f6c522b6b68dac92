package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hherman1/raytracer/frame"
)

// Target is anything a full screen shader rect can be drawn onto. *ebiten.Image satisfies it.
type Target interface {
	DrawRectShader(width, height int, shader *ebiten.Shader, options *ebiten.DrawRectShaderOptions)
}

// Renderer owns the bound program and the blank surface the quad is drawn with. Not thread safe, it lives on the
// game thread.
type Renderer struct {
	backend Backend
	prog    *Program

	// Blank source image handed to the shader as image 0. Kept until the drawing size changes.
	blank          *ebiten.Image
	blankW, blankH int

	draws    uint64
	surfaces uint64
}

func New(b Backend) *Renderer {
	if b == nil {
		b = EbitenBackend{}
	}
	return &Renderer{backend: b}
}

// Compile uses the renderer's backend without binding the result.
func (r *Renderer) Compile(src []byte) (*Program, error) {
	return Compile(r.backend, src)
}

// Load compiles src and binds it in place of the current program. On failure the current program, if any, stays
// bound and the *CompileError is returned.
func (r *Renderer) Load(src []byte) error {
	p, err := r.Compile(src)
	if err != nil {
		return err
	}
	r.Bind(p)
	return nil
}

// Bind swaps in a compiled program, releasing the previous one.
func (r *Renderer) Bind(p *Program) {
	if r.prog != nil && r.prog != p {
		r.backend.DeallocateShader(r.prog.shader)
	}
	r.prog = p
}

// Bound reports whether a usable program is bound.
func (r *Renderer) Bound() bool {
	return r.prog != nil
}

// Uniforms returns the uniform values a frame with state s is drawn with.
func Uniforms(s *frame.State) map[string]any {
	res := s.Resolution()
	return map[string]any{
		UniformResolution: []float32{float32(res.X), float32(res.Y)},
		UniformTime:       float32(s.Elapsed),
		UniformMouse:      []float32{float32(s.Pointer.X), float32(s.Pointer.Y)},
	}
}

// Draw submits exactly one full screen rect with the bound program. Without a program, or with nothing to draw
// into, it does nothing.
func (r *Renderer) Draw(t Target, s *frame.State) {
	if r.prog == nil || s.Width <= 0 || s.Height <= 0 {
		return
	}
	blank := r.surface(s.Width, s.Height)
	t.DrawRectShader(s.Width, s.Height, r.prog.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: Uniforms(s),
		Images:   [4]*ebiten.Image{blank},
	})
	r.draws++
}

// surface returns the blank image for the given size, reallocating only when the size changed since the last call.
func (r *Renderer) surface(w, h int) *ebiten.Image {
	if r.blank != nil && r.blankW == w && r.blankH == h {
		return r.blank
	}
	if r.blank != nil {
		r.backend.DeallocateImage(r.blank)
	}
	r.blank = r.backend.NewImage(w, h)
	r.blankW, r.blankH = w, h
	r.surfaces++
	return r.blank
}

// Draws is the number of draw calls submitted so far.
func (r *Renderer) Draws() uint64 { return r.draws }

// Surfaces is the number of blank surfaces allocated so far.
func (r *Renderer) Surfaces() uint64 { return r.surfaces }

// Dispose releases the program and the blank surface. The renderer can be reused afterwards.
func (r *Renderer) Dispose() {
	if r.prog != nil {
		r.backend.DeallocateShader(r.prog.shader)
		r.prog = nil
	}
	if r.blank != nil {
		r.backend.DeallocateImage(r.blank)
		r.blank = nil
		r.blankW, r.blankH = 0, 0
	}
}

func (r *Renderer) String() string {
	return fmt.Sprintf("renderer(bound=%v draws=%d surfaces=%d)", r.Bound(), r.draws, r.surfaces)
}
