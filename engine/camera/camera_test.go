package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTriggerPosition(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	if got := c.TriggerPosition(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("TriggerPosition without trigger = %v, want camera position", got)
	}

	c.SetVolumeTrigger(Point{10, 0, 0})
	if got := c.TriggerPosition(); got != (mgl32.Vec3{10, 0, 0}) {
		t.Errorf("TriggerPosition with trigger = %v, want trigger position", got)
	}

	c.SetVolumeTrigger(nil)
	if got := c.TriggerPosition(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("TriggerPosition after clearing trigger = %v", got)
	}
}

func TestDefaults(t *testing.T) {
	c := NewCamera()
	if c.RenderType() != RenderTypeBase || c.CameraType() != CameraTypeGame {
		t.Errorf("defaults: render type %v camera type %v", c.RenderType(), c.CameraType())
	}
	if c.VolumeLayerMask() != 0xFFFFFFFF {
		t.Errorf("default layer mask = %#x", c.VolumeLayerMask())
	}
	if !c.PostProcessEnabled() {
		t.Error("post-processing should default to enabled")
	}
}

func TestControllerMove(t *testing.T) {
	tests := []struct {
		name string
		opts []CameraControllerOption
		dt   float32
		axes []Axis
		want mgl32.Vec3
	}{
		{"forward", nil, 1, []Axis{AxisForward}, mgl32.Vec3{0, 0, -5}},
		{"opposites cancel", nil, 1, []Axis{AxisLeft, AxisRight}, mgl32.Vec3{}},
		{"speed scales with dt", []CameraControllerOption{WithPanSpeed(2)}, 0.5, []Axis{AxisUp}, mgl32.Vec3{0, 1, 0}},
		{"non-positive speed ignored", []CameraControllerOption{WithPanSpeed(-1)}, 1, []Axis{AxisRight}, mgl32.Vec3{5, 0, 0}},
		{"bounds clamp", []CameraControllerOption{WithBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})}, 1, []Axis{AxisBack}, mgl32.Vec3{0, 0, 1}},
		{"no time", nil, 0, []Axis{AxisForward}, mgl32.Vec3{}},
		{"unknown axis", nil, 1, []Axis{Axis(42)}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			cc := NewCameraController(c, tt.opts...)
			cc.Move(tt.dt, tt.axes...)
			if got := c.Position(); !got.ApproxEqual(tt.want) {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestControllerDiagonalIsNormalized(t *testing.T) {
	c := NewCamera()
	NewCameraController(c).Move(1, AxisForward, AxisRight)
	if got := c.Position().Len(); mgl32.Abs(got-5) > 1e-4 {
		t.Errorf("diagonal distance = %v, want 5", got)
	}
}
