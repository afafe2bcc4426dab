package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
)

func TestInitRejectsContextWithoutDescriptor(t *testing.T) {
	r := NewRenderer(BackendTypeWGPU)
	s := host.NewMemorySurface(100, 100, 1)
	ctx, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := r.Init(ctx); !errors.Is(err, ErrUnsupportedContext) {
		t.Fatalf("Init = %v, want ErrUnsupportedContext", err)
	}
}

func TestUninitializedRenderer(t *testing.T) {
	r := NewRenderer(BackendTypeWGPU)
	r.Resize(640, 480)
	r.Draw(Frame{})

	if w, h := r.Size(); w != 0 || h != 0 {
		t.Fatalf("Size() = %dx%d before Init", w, h)
	}
	if r.Frames() != 0 {
		t.Fatalf("Frames() = %d before Init", r.Frames())
	}
	if err := r.Delete(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Delete = %v, want ErrNotInitialized", err)
	}
}

func TestClearColor(t *testing.T) {
	r := NewRenderer(BackendTypeWGPU, WithClearColor(0.2, 0.4, 0.6, 1))
	if red, green, blue, alpha := r.ClearColor(); red != 0.2 || green != 0.4 || blue != 0.6 || alpha != 1 {
		t.Fatalf("ClearColor() = %v %v %v %v", red, green, blue, alpha)
	}
	r.SetClearColor(1, 0, 0, 0.5)
	if red, _, _, alpha := r.ClearColor(); red != 1 || alpha != 0.5 {
		t.Fatalf("ClearColor() after set = %v, %v", red, alpha)
	}
}

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		name string
		want PresentMode
		ok   bool
	}{
		{"vsync", PresentModeVSync, true},
		{"", PresentModeVSync, true},
		{"uncapped", PresentModeUncapped, true},
		{"triple", PresentModeVSync, false},
	}
	for _, tt := range tests {
		got, ok := ParsePresentMode(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePresentMode(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
