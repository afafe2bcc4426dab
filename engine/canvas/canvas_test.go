package canvas

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/Carmen-Shannon/oxy-canvas/engine/lock"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
)

type fakeRenderer struct {
	log       *[]string
	inits     int
	deletes   int
	resizes   [][2]int
	frames    []renderer.Frame
	initErr   error
	deleteErr error
}

func (r *fakeRenderer) note(s string) {
	if r.log != nil {
		*r.log = append(*r.log, s)
	}
}

func (r *fakeRenderer) Init(surface.Context) error {
	if r.initErr != nil {
		return r.initErr
	}
	r.inits++
	r.note("init")
	return nil
}

func (r *fakeRenderer) Resize(width, height int) {
	r.resizes = append(r.resizes, [2]int{width, height})
	r.note("resize")
}

func (r *fakeRenderer) Draw(frame renderer.Frame) {
	r.frames = append(r.frames, frame)
	r.note("draw")
}

func (r *fakeRenderer) Delete() error {
	r.deletes++
	r.note("delete")
	return r.deleteErr
}

func (r *fakeRenderer) lastFrame(t *testing.T) renderer.Frame {
	t.Helper()
	if len(r.frames) == 0 {
		t.Fatal("no frame drawn")
	}
	return r.frames[len(r.frames)-1]
}

type env struct {
	host     *host.MemoryHost
	surface  *host.MemorySurface
	renderer *fakeRenderer
	canvas   *Canvas
}

func newEnv(options ...CanvasBuilderOption) *env {
	h := host.NewMemoryHost()
	s := host.NewMemorySurface(400, 300, 2)
	r := &fakeRenderer{}
	return &env{host: h, surface: s, renderer: r, canvas: New(h, s, r, options...)}
}

const frame = 16 * time.Millisecond

func TestMountUnmountIsSymmetric(t *testing.T) {
	e := newEnv(WithLocksCursor(true))
	listeners := e.host.Listeners()

	for cycle := range 3 {
		e.canvas.Mount()
		e.canvas.Mount()
		if !e.canvas.Mounted() {
			t.Fatalf("cycle %d: not mounted", cycle)
		}
		// 7 input listeners, 2 lock listeners, 1 resize observer.
		if listeners.Len() != 10 {
			t.Fatalf("cycle %d: %d listeners after mount, want 10", cycle, listeners.Len())
		}
		if e.host.Pending() != 1 {
			t.Fatalf("cycle %d: Pending() = %d, want 1", cycle, e.host.Pending())
		}

		if err := e.canvas.Unmount(); err != nil {
			t.Fatalf("cycle %d: Unmount: %v", cycle, err)
		}
		if err := e.canvas.Unmount(); err != nil {
			t.Fatalf("cycle %d: second Unmount: %v", cycle, err)
		}
		if listeners.Len() != 0 {
			t.Fatalf("cycle %d: %d listeners leaked", cycle, listeners.Len())
		}
		if e.host.Pending() != 0 {
			t.Fatalf("cycle %d: frame still pending", cycle)
		}
	}

	if e.renderer.inits != 3 || e.renderer.deletes != 3 {
		t.Fatalf("inits=%d deletes=%d, want 3 each", e.renderer.inits, e.renderer.deletes)
	}
	if e.surface.Acquires != 3 || e.surface.Releases != 3 {
		t.Fatalf("acquires=%d releases=%d, want 3 each", e.surface.Acquires, e.surface.Releases)
	}
}

func TestFreeCursorListenerCount(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()
	if n := e.host.Listeners().Len(); n != 8 {
		t.Fatalf("%d listeners, want 8", n)
	}
	if n := e.host.Listeners().Count(host.ScopeDocument, host.EventPointerLockChange); n != 0 {
		t.Fatalf("free-cursor canvas listens for lock changes")
	}
}

func TestFrameDeltas(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()

	e.host.Advance(100 * time.Millisecond)
	e.host.Advance(frame)
	e.host.Advance(17 * time.Millisecond)

	want := []time.Duration{0, frame, 17 * time.Millisecond}
	if len(e.renderer.frames) != len(want) {
		t.Fatalf("drew %d frames, want %d", len(e.renderer.frames), len(want))
	}
	for i, f := range e.renderer.frames {
		if f.Delta != want[i] {
			t.Fatalf("frame %d delta = %v, want %v", i, f.Delta, want[i])
		}
	}
	if e.renderer.frames[0].Now != 100*time.Millisecond {
		t.Fatalf("frame 0 Now = %v", e.renderer.frames[0].Now)
	}
}

func TestResizeBeforeDraw(t *testing.T) {
	var log []string
	e := newEnv()
	e.renderer.log = &log
	var hooked [][2]int
	e.canvas = New(e.host, e.surface, e.renderer, WithOnResize(func(_ renderer.Renderer, w, h int) {
		hooked = append(hooked, [2]int{w, h})
	}))

	e.canvas.Mount()
	e.host.Advance(frame)
	e.host.Advance(frame)

	want := []string{"init", "resize", "draw", "draw"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if len(hooked) != 1 || hooked[0] != [2]int{800, 600} {
		t.Fatalf("onResize calls = %v", hooked)
	}
	if _, _, w, h := e.surface.Context().Viewport(); w != 800 || h != 600 {
		t.Fatalf("viewport = %dx%d", w, h)
	}
}

func TestResizeObserverPush(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()
	e.host.Advance(frame)

	e.surface.SetClientSize(500, 300)
	e.host.NotifyResize(e.surface)
	if len(e.renderer.resizes) != 2 || e.renderer.resizes[1] != [2]int{1000, 600} {
		t.Fatalf("resizes after push = %v", e.renderer.resizes)
	}

	e.host.Advance(frame)
	if len(e.renderer.resizes) != 2 {
		t.Fatalf("poll repeated an applied resize: %v", e.renderer.resizes)
	}
}

func TestUnmountCancelsPendingFrame(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()
	e.host.Advance(frame)

	if err := e.canvas.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if n := e.host.Advance(frame); n != 0 {
		t.Fatalf("%d frame callbacks ran after unmount", n)
	}
	if len(e.renderer.frames) != 1 {
		t.Fatalf("drew %d frames, want 1", len(e.renderer.frames))
	}
	if !e.surface.Released() {
		t.Fatal("surface not released")
	}
}

func TestUnmountFromDraw(t *testing.T) {
	e := newEnv()
	draws := 0
	e.canvas = New(e.host, e.surface, e.renderer, WithOnDraw(func(r renderer.Renderer, f renderer.Frame) {
		draws++
		if draws == 2 {
			if err := e.canvas.Unmount(); err != nil {
				t.Errorf("Unmount: %v", err)
			}
		}
	}))

	e.canvas.Mount()
	for range 4 {
		e.host.Advance(frame)
	}
	if draws != 2 {
		t.Fatalf("draws = %d, want 2", draws)
	}
	if e.host.Pending() != 0 {
		t.Fatal("frame pending after mid-frame unmount")
	}
}

func TestUnmountFromResizeHookSkipsDraw(t *testing.T) {
	e := newEnv()
	e.canvas = New(e.host, e.surface, e.renderer, WithOnResize(func(renderer.Renderer, int, int) {
		_ = e.canvas.Unmount()
	}))

	e.canvas.Mount()
	e.host.Advance(frame)

	if len(e.renderer.frames) != 0 {
		t.Fatal("draw ran on a surface released mid-frame")
	}
	if e.host.Pending() != 0 {
		t.Fatal("frame pending after unmount")
	}
}

func TestEnvironmentUnavailable(t *testing.T) {
	e := newEnv()
	e.surface.SetUnavailable(true)
	initCalled := false
	e.canvas = New(e.host, e.surface, e.renderer, WithOnInit(func(renderer.Renderer) { initCalled = true }))

	e.canvas.Mount()

	if e.canvas.Mounted() || initCalled || e.renderer.inits != 0 {
		t.Fatal("mount proceeded without a context")
	}
	if e.host.Listeners().Len() != 0 || e.host.Pending() != 0 {
		t.Fatal("listeners or frames attached without a context")
	}
	if err := e.canvas.Unmount(); err != nil {
		t.Fatalf("Unmount of unmounted canvas: %v", err)
	}
}

func TestRendererInitFailureReleasesSurface(t *testing.T) {
	e := newEnv()
	e.renderer.initErr = errors.New("no adapter")

	e.canvas.Mount()

	if e.canvas.Mounted() {
		t.Fatal("mounted despite renderer init failure")
	}
	if !e.surface.Released() {
		t.Fatal("surface context kept after failed init")
	}
	if e.host.Listeners().Len() != 0 {
		t.Fatal("listeners attached after failed init")
	}
}

func TestLockedDeltaFlow(t *testing.T) {
	e := newEnv(WithLocksCursor(true))
	e.canvas.Mount()

	e.host.PointerDown(e.surface, common.PrimaryButton)
	if e.host.LockRequests != 1 {
		t.Fatalf("LockRequests = %d, want 1", e.host.LockRequests)
	}
	e.host.PointerMove(e.surface, 5, 5, 30, 30) // before the grant

	e.host.Advance(frame)
	f := e.renderer.lastFrame(t)
	if !f.Input.Locked() || e.canvas.LockState() != lock.Locked {
		t.Fatal("lock not applied before the frame")
	}
	if dx, dy := f.Input.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("motion before lock leaked into the frame: (%v, %v)", dx, dy)
	}
	if !f.Input.Pressed(common.PointerButton(0)) {
		t.Fatal("primary button edge missing")
	}

	e.host.PointerMove(e.surface, 0, 0, 3, 4)
	e.host.PointerMove(e.surface, 0, 0, 1, -1)
	e.host.Advance(frame)
	if dx, dy := e.renderer.lastFrame(t).Input.CursorDelta(); dx != 4 || dy != 3 {
		t.Fatalf("delta = (%v, %v), want (4, 3)", dx, dy)
	}

	ev := e.host.KeyDown(common.KeyEscape)
	if e.host.ExitRequests != 1 {
		t.Fatalf("ExitRequests = %d, want 1", e.host.ExitRequests)
	}
	if !ev.DefaultPrevented() {
		t.Fatal("key default not prevented while locked")
	}
	e.host.Advance(frame)
	if e.canvas.LockState() != lock.Unlocked || e.renderer.lastFrame(t).Input.Locked() {
		t.Fatal("still locked after Escape")
	}
}

func TestWheelDefaultPreventedOnlyWhileLocked(t *testing.T) {
	e := newEnv(WithLocksCursor(true))
	e.canvas.Mount()

	if ev := e.host.Wheel(e.surface, 0, 100); ev.DefaultPrevented() {
		t.Fatal("wheel prevented while unlocked")
	}
	e.host.PointerDown(e.surface, common.PrimaryButton)
	e.host.Flush()
	if ev := e.host.Wheel(e.surface, 0, 100); !ev.DefaultPrevented() {
		t.Fatal("wheel not prevented while locked")
	}
	e.host.Advance(frame)
	if _, dy := e.renderer.lastFrame(t).Input.ScrollDelta(); dy != 200 {
		t.Fatalf("scroll dy = %v, want 200", dy)
	}
}

func TestUnmountExitsHeldLock(t *testing.T) {
	e := newEnv(WithLocksCursor(true))
	e.canvas.Mount()
	e.host.PointerDown(e.surface, common.PrimaryButton)
	e.host.Flush()

	_ = e.canvas.Unmount()
	if e.host.PointerLockElement() != nil {
		t.Fatal("pointer lock outlived the mount")
	}
}

func TestCanvasesOnOneHostAreIsolated(t *testing.T) {
	h := host.NewMemoryHost()
	sa := host.NewMemorySurface(400, 300, 1)
	sb := host.NewMemorySurface(200, 100, 1)
	ra, rb := &fakeRenderer{}, &fakeRenderer{}
	a := New(h, sa, ra, WithLocksCursor(true))
	b := New(h, sb, rb, WithLocksCursor(true))
	a.Mount()
	b.Mount()

	h.PointerDown(sa, common.PrimaryButton)
	if h.LockRequests != 1 {
		t.Fatalf("LockRequests after one click = %d, want 1", h.LockRequests)
	}
	h.Flush()
	if a.LockState() != lock.Locked || b.LockState() != lock.Unlocked {
		t.Fatalf("A=%s B=%s, want A locked", a.LockState(), b.LockState())
	}
	if h.PointerLockElement() != surface.Surface(sa) {
		t.Fatal("lock element is not the clicked surface")
	}

	h.Wheel(sa, 0, 5)
	h.PointerMove(sa, 0, 0, 2, 1)
	h.PointerDown(sb, 2)
	h.Advance(frame)

	ia, ib := ra.lastFrame(t).Input, rb.lastFrame(t).Input
	if _, dy := ia.ScrollDelta(); dy != 5 {
		t.Fatalf("scroll A = %v, want 5", dy)
	}
	if _, dy := ib.ScrollDelta(); dy != 0 {
		t.Fatalf("scroll leaked into B: %v", dy)
	}
	if dx, dy := ia.CursorDelta(); dx != 2 || dy != 1 {
		t.Fatalf("delta A = (%v, %v), want (2, 1)", dx, dy)
	}
	if dx, dy := ib.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("motion leaked into B: (%v, %v)", dx, dy)
	}
	if ia.Held(common.PointerButton(2)) || !ib.Held(common.PointerButton(2)) {
		t.Fatal("button press routed to the wrong canvas")
	}
	if !ia.Held(common.PointerButton(0)) || ib.Held(common.PointerButton(0)) {
		t.Fatal("primary press routed to the wrong canvas")
	}

	// A resize of B's surface only reconciles B.
	sb.SetClientSize(300, 100)
	h.NotifyResize(sb)
	if len(ra.resizes) != 1 || len(rb.resizes) != 2 {
		t.Fatalf("resizes A=%v B=%v", ra.resizes, rb.resizes)
	}

	if err := a.Unmount(); err != nil {
		t.Fatalf("Unmount A: %v", err)
	}
	if err := b.Unmount(); err != nil {
		t.Fatalf("Unmount B: %v", err)
	}
	if h.Listeners().Len() != 0 {
		t.Fatalf("%d listeners left", h.Listeners().Len())
	}
}

func TestFreeCursorFlow(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()

	e.host.PointerMove(e.surface, 10, 10, 0, 0)
	e.host.PointerMove(e.surface, 14, 18, 4, 8)
	e.host.Advance(frame)

	in := e.renderer.lastFrame(t).Input
	if dx, dy := in.CursorDelta(); dx != 4 || dy != 8 {
		t.Fatalf("delta = (%v, %v), want (4, 8)", dx, dy)
	}
	if x, y, ok := in.CursorPosition(); !ok || x != 14 || y != 18 {
		t.Fatalf("position = (%v, %v, %v)", x, y, ok)
	}

	e.host.Advance(frame)
	in = e.renderer.lastFrame(t).Input
	if dx, dy := in.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("delta not reset: (%v, %v)", dx, dy)
	}
	if x, y, ok := in.CursorPosition(); !ok || x != 14 || y != 18 {
		t.Fatalf("position lost after reset: (%v, %v, %v)", x, y, ok)
	}

	// Primary press does not lock in free-cursor mode.
	e.host.PointerDown(e.surface, common.PrimaryButton)
	if e.host.LockRequests != 0 {
		t.Fatal("free-cursor canvas requested pointer lock")
	}
}

func TestEventsVisibleInExactlyOneFrame(t *testing.T) {
	e := newEnv()
	e.canvas.Mount()
	e.host.Advance(frame)

	e.host.KeyDown("w")
	e.host.Advance(frame)
	e.host.Advance(frame)
	e.host.KeyUp("w")
	e.host.Advance(frame)

	frames := e.renderer.frames[1:]
	if !frames[0].Input.Pressed("w") || !frames[0].Input.Held("w") {
		t.Fatal("press not visible in the next frame")
	}
	if frames[1].Input.Pressed("w") || !frames[1].Input.Held("w") {
		t.Fatal("press visible twice or held state lost")
	}
	if !frames[2].Input.Released("w") || frames[2].Input.Held("w") {
		t.Fatal("release not visible")
	}
}

func TestEdgeSuppression(t *testing.T) {
	focused := false
	e := newEnv(WithEdgeSuppression(func() bool { return !focused }))
	e.canvas.Mount()

	e.host.KeyDown("w")
	e.host.PointerDown(e.surface, 2)
	e.host.Advance(frame)

	in := e.renderer.lastFrame(t).Input
	if in.Pressed("w") || !in.Held("w") {
		t.Fatal("suppressed key edge delivered or held state dropped")
	}
	if !in.Pressed(common.PointerButton(2)) {
		t.Fatal("button edge suppressed")
	}
}

func TestWithoutDriveable(t *testing.T) {
	e := newEnv(WithCapabilities(Resizable | InputAware))
	if err := e.canvas.Step(0); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("Step before mount = %v", err)
	}

	e.canvas.Mount()
	if e.host.Pending() != 0 {
		t.Fatal("non-driveable canvas scheduled a frame")
	}
	e.host.KeyDown("a")
	if err := e.canvas.Step(5 * time.Millisecond); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if err := e.canvas.Step(20 * time.Millisecond); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(e.renderer.frames) != 2 || e.renderer.frames[1].Delta != 15*time.Millisecond {
		t.Fatalf("frames = %+v", e.renderer.frames)
	}
	if !e.renderer.frames[0].Input.Pressed("a") || e.renderer.frames[1].Input.Pressed("a") {
		t.Fatal("caller-driven frames did not reset input")
	}
}

func TestStepOnVanishedSurface(t *testing.T) {
	e := newEnv(WithCapabilities(Resizable))
	e.canvas.Mount()
	_ = e.surface.Release()

	err := e.canvas.Step(0)
	var ie *surface.InvariantError
	if !errors.As(err, &ie) || !errors.Is(err, surface.ErrSurfaceReleased) {
		t.Fatalf("Step = %v, want InvariantError(ErrSurfaceReleased)", err)
	}
}

func TestWithoutInputAware(t *testing.T) {
	e := newEnv(WithCapabilities(Driveable | Resizable))
	e.canvas.Mount()

	if n := e.host.Listeners().Len(); n != 1 {
		t.Fatalf("%d listeners, want only the resize observer", n)
	}
	e.host.KeyDown("w")
	e.host.Advance(frame)
	if e.renderer.lastFrame(t).Input != nil {
		t.Fatal("raw canvas received an input snapshot")
	}
}

func TestWithoutResizable(t *testing.T) {
	e := newEnv(WithCapabilities(Driveable))
	e.canvas.Mount()

	if w, h := e.surface.BackingSize(); w != 800 || h != 600 {
		t.Fatalf("backing = %dx%d, want sized once at mount", w, h)
	}
	e.surface.SetClientSize(100, 100)
	e.host.NotifyResize(e.surface)
	e.host.Advance(frame)

	if len(e.renderer.resizes) != 1 {
		t.Fatalf("resizes = %v, want the mount-time resize only", e.renderer.resizes)
	}
	if e.host.Listeners().Len() != 0 {
		t.Fatal("fixed-size raw canvas attached listeners")
	}
}

func TestUnmountAggregatesErrors(t *testing.T) {
	e := newEnv()
	boom := errors.New("device lost")
	e.renderer.deleteErr = boom
	e.canvas.Mount()

	err := e.canvas.Unmount()
	if !errors.Is(err, boom) {
		t.Fatalf("Unmount = %v, want wrapped device lost", err)
	}
	if !e.surface.Released() {
		t.Fatal("surface not released after renderer error")
	}
}

func TestCapabilitiesHas(t *testing.T) {
	if !AllCapabilities.Has(Driveable | InputAware) {
		t.Fatal("AllCapabilities missing flags")
	}
	if (Driveable | Resizable).Has(InputAware) {
		t.Fatal("Has reported an unset flag")
	}
}
