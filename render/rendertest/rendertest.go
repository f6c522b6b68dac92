// Package rendertest has a GPU free backend and draw target for exercising the renderer and the host in tests.
package rendertest

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Backend hands out empty ebiten handles and keeps count of what was allocated and released. The handles are only
// good for identity comparisons, nothing may be drawn with them.
type Backend struct {
	// When set, every NewShader call fails with this compiler log.
	Diagnostics string

	// Sources passed to NewShader, in order
	Sources [][]byte

	ShadersFreed int

	// Sizes of every image allocated, in order
	Images      [][2]int
	ImagesFreed int
}

func (b *Backend) NewShader(src []byte) (*ebiten.Shader, error) {
	b.Sources = append(b.Sources, src)
	if b.Diagnostics != "" {
		return nil, errors.New(b.Diagnostics)
	}
	return &ebiten.Shader{}, nil
}

func (b *Backend) DeallocateShader(s *ebiten.Shader) {
	b.ShadersFreed++
}

func (b *Backend) NewImage(width, height int) *ebiten.Image {
	b.Images = append(b.Images, [2]int{width, height})
	return &ebiten.Image{}
}

func (b *Backend) DeallocateImage(img *ebiten.Image) {
	b.ImagesFreed++
}

// Call is one recorded DrawRectShader.
type Call struct {
	Width, Height int
	Shader        *ebiten.Shader
	Uniforms      map[string]any
	Images        [4]*ebiten.Image
}

// Target records draw calls instead of submitting them.
type Target struct {
	Calls []Call
}

func (t *Target) DrawRectShader(width, height int, shader *ebiten.Shader, options *ebiten.DrawRectShaderOptions) {
	c := Call{Width: width, Height: height, Shader: shader}
	if options != nil {
		c.Uniforms = options.Uniforms
		c.Images = options.Images
	}
	t.Calls = append(t.Calls, c)
}
