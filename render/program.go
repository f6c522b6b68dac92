package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Names of the uniforms every fragment shader is expected to declare. Kage only binds exported variables.
const (
	UniformResolution = "Resolution"
	UniformTime       = "Time"
	UniformMouse      = "Mouse"
)

// Backend is the slice of ebiten the renderer allocates GPU resources from.
type Backend interface {
	NewShader(src []byte) (*ebiten.Shader, error)
	DeallocateShader(s *ebiten.Shader)
	NewImage(width, height int) *ebiten.Image
	DeallocateImage(img *ebiten.Image)
}

// EbitenBackend allocates straight from ebiten.
type EbitenBackend struct{}

func (EbitenBackend) NewShader(src []byte) (*ebiten.Shader, error) { return ebiten.NewShader(src) }
func (EbitenBackend) DeallocateShader(s *ebiten.Shader)            { s.Deallocate() }
func (EbitenBackend) NewImage(width, height int) *ebiten.Image {
	return ebiten.NewImage(width, height)
}
func (EbitenBackend) DeallocateImage(img *ebiten.Image) { img.Deallocate() }

// Program is a compiled fragment shader. Its uniforms are written on every draw and never read back.
type Program struct {
	shader *ebiten.Shader
}

// Shader exposes the underlying ebiten shader for drawing.
func (p *Program) Shader() *ebiten.Shader {
	return p.shader
}

// CompileError is returned when ebiten refuses a shader source. Diagnostics is the compiler log verbatim.
type CompileError struct {
	Diagnostics string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile shader: %s", e.Diagnostics)
}

// Compile turns a Kage source into a Program. Either the program or a *CompileError is returned, never both, and
// the caller picks whether a failure is fatal.
func Compile(b Backend, src []byte) (*Program, error) {
	shader, err := b.NewShader(src)
	if err != nil {
		return nil, &CompileError{Diagnostics: err.Error()}
	}
	return &Program{shader: shader}, nil
}
