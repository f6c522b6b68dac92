package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hherman1/raytracer/config"
	"github.com/hherman1/raytracer/host"
	"github.com/hherman1/raytracer/render"
	"github.com/hherman1/raytracer/resources"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("raytracer", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Parse("raytracer", args, os.Stderr)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	src, fallback, err := resources.Source(cfg.Shader.Path)
	if err != nil {
		return fmt.Errorf("loading shader: %w", err)
	}
	if fallback {
		log.Warn("shader not found, using the built in one", "path", cfg.Shader.Path)
	}

	if cfg.Check {
		return check(src, render.EbitenBackend{}, stdout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var reloads <-chan []byte
	if cfg.Shader.Watch {
		reloads, err = host.Watch(ctx, cfg.Shader.Path, log)
		if err != nil {
			return fmt.Errorf("watching shader: %w", err)
		}
		log.Info("watching shader for changes", "path", cfg.Shader.Path)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	h := host.New(cfg.Window, host.Options{Logger: log, Reloads: reloads})
	defer h.Close()
	if err := startupError(h.Initialize(src), cfg.Shader.OnError, log); err != nil {
		return err
	}

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// startupError applies the on_error policy to the result of initializing the host. Only a compile failure under
// OnErrorContinue is survivable; it's logged and nil is returned.
func startupError(err error, onError string, log *slog.Logger) error {
	if err == nil {
		return nil
	}
	var ce *render.CompileError
	if !errors.As(err, &ce) || onError != config.OnErrorContinue {
		return fmt.Errorf("loading main shader: %w", err)
	}
	log.Error("shader failed to compile, running without it", "diagnostics", ce.Diagnostics)
	return nil
}

// check compiles src and prints the compiler's verdict without opening a window.
func check(src []byte, b render.Backend, stdout io.Writer) error {
	p, err := render.Compile(b, src)
	if err != nil {
		var ce *render.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(stdout, ce.Diagnostics)
		}
		return err
	}
	b.DeallocateShader(p.Shader())
	fmt.Fprintln(stdout, "ok")
	return nil
}
