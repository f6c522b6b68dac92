package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// The fragment shader is read from here, relative to the working directory, unless configured otherwise.
const DefaultShaderPath = "fragment.kage"

//go:embed shaders
var shadersFS embed.FS

// Loaded embedded shaders. Not thread safe.
var embedded = map[string][]byte{}

// Loads an embedded shader from the given path (shaders/*), reusing it if previously loaded. Not thread safe.
func Embedded(path string) ([]byte, error) {
	if b, ok := embedded[path]; ok {
		return b, nil
	}
	b, err := shadersFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	embedded[path] = b
	return b, nil
}

// The shader that ships with the binary. It declares every uniform the host feeds.
func Default() []byte {
	b, err := Embedded("shaders/fragment.go")
	if err != nil {
		// only reachable if the embed directive above is broken
		panic(err)
	}
	return b
}

// Source reads a shader from disk. When nothing exists at path the embedded default is returned instead and
// fallback is true, any other read failure is an error.
func Source(path string) (src []byte, fallback bool, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read shader %q: %w", path, err)
	}
	return b, false, nil
}
