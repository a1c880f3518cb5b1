package window

import (
	"errors"
	"sync"
	"testing"
)

func newTestWindow() *engineWindow {
	return &engineWindow{
		keysMu: &sync.Mutex{},
		held:   make(map[Key]struct{}),
	}
}

func TestKeyPressedTracksHeldKeys(t *testing.T) {
	w := newTestWindow()

	var downs, ups []Key
	w.SetKeyDownCallback(func(k Key) { downs = append(downs, k) })
	w.SetKeyUpCallback(func(k Key) { ups = append(ups, k) })

	w.keyDown(KeyW)
	w.keyDown(KeyA)
	if !w.KeyPressed(KeyW) || !w.KeyPressed(KeyA) {
		t.Fatal("expected W and A to be held")
	}
	if w.KeyPressed(KeyS) {
		t.Error("S was never pressed")
	}

	w.keyUp(KeyW)
	if w.KeyPressed(KeyW) {
		t.Error("W should be released")
	}
	if !w.KeyPressed(KeyA) {
		t.Error("A should still be held")
	}

	if len(downs) != 2 || downs[0] != KeyW || downs[1] != KeyA {
		t.Errorf("down callbacks = %v", downs)
	}
	if len(ups) != 1 || ups[0] != KeyW {
		t.Errorf("up callbacks = %v", ups)
	}
}

func TestKeyCallbacksOptional(t *testing.T) {
	w := newTestWindow()
	w.keyDown(KeySpace)
	w.keyUp(KeySpace)
	if w.KeyPressed(KeySpace) {
		t.Error("space should be released")
	}
}

func TestOptions(t *testing.T) {
	w := newTestWindow()
	for _, opt := range []WindowBuilderOption{WithTitle("t"), WithSize(800, 600), WithMinSize(100, 50)} {
		opt(w)
	}
	if w.title != "t" || w.Width() != 800 || w.Height() != 600 || w.minWidth != 100 || w.minHeight != 50 {
		t.Errorf("unexpected window config: %+v", w)
	}
}

func TestReleaseKeysClearsHeldKeys(t *testing.T) {
	w := newTestWindow()
	released := map[Key]bool{}
	w.SetKeyUpCallback(func(k Key) { released[k] = true })

	w.keyDown(KeyW)
	w.keyDown(KeyE)
	w.releaseKeys()

	for _, k := range []Key{KeyW, KeyE} {
		if w.KeyPressed(k) {
			t.Errorf("key %v still held", k)
		}
		if !released[k] {
			t.Errorf("no key up callback for %v", k)
		}
	}
}

func TestUninitializedWindow(t *testing.T) {
	w := newTestWindow()
	if w.IsRunning() {
		t.Error("IsRunning() = true before the platform window exists")
	}
	if d := w.SurfaceDescriptor(); d != nil {
		t.Errorf("SurfaceDescriptor() = %v, want nil", d)
	}
	if err := w.Close(); !errors.Is(err, ErrWindowNotInitialized) {
		t.Errorf("Close() error = %v, want ErrWindowNotInitialized", err)
	}
}
