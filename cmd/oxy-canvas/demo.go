package main

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
)

// Color change per pixel of cursor motion and per wheel unit.
const (
	cursorGain = 0.001
	scrollGain = 0.05
)

// demo tints the clear color from the frame's input: cursor motion drives red and green, the
// wheel drives blue and Space restores the configured color.
type demo struct {
	base  [4]float64
	color [4]float64
}

func newDemo(base [4]float64) *demo {
	return &demo{base: base, color: base}
}

func (d *demo) draw(r renderer.Renderer, frame renderer.Frame) {
	d.apply(frame.Input)
	if cr, ok := r.(renderer.ClearRenderer); ok {
		cr.SetClearColor(d.color[0], d.color[1], d.color[2], d.color[3])
	}
	r.Draw(frame)
}

func (d *demo) apply(in *input.Snapshot) {
	if in == nil {
		return
	}
	if in.Pressed(common.KeySpace) {
		d.color = d.base
		return
	}
	dx, dy := in.CursorDelta()
	_, sy := in.ScrollDelta()
	d.color[0] = clamp01(d.color[0] + dx*cursorGain)
	d.color[1] = clamp01(d.color[1] + dy*cursorGain)
	d.color[2] = clamp01(d.color[2] - sy*scrollGain)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
