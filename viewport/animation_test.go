package viewport

import (
	"math"
	"testing"
	"time"
)

func TestNewAnimation(t *testing.T) {
	a := NewAnimation()
	if a.Multi != 1 || a.ModVal != 17 || a.Step != 0.01 {
		t.Errorf("NewAnimation() = %+v", *a)
	}
}

func TestFramePeriod(t *testing.T) {
	if FramePeriod < 6*time.Millisecond || FramePeriod > 7*time.Millisecond {
		t.Errorf("FramePeriod = %v, want ~6.94ms", FramePeriod)
	}
}

func TestAnimatorRendersThenAdvances(t *testing.T) {
	var phases []float64
	anim := NewAnimation()
	a := NewAnimator(anim, func(a Animation) {
		phases = append(phases, a.Multi)
	})

	for range 5 {
		a.Frame()
	}

	if len(phases) != 5 {
		t.Fatalf("rendered %d frames, want 5", len(phases))
	}
	for i, p := range phases {
		if want := 1 + 0.01*float64(i); math.Abs(p-want) > 1e-12 {
			t.Errorf("frame %d multi = %v, want %v", i, p, want)
		}
	}
	if got := a.Animation().Multi; math.Abs(got-1.05) > 1e-12 {
		t.Errorf("multi after 5 frames = %v, want 1.05", got)
	}
	if a.Animation().ModVal != 17 {
		t.Errorf("ModVal changed to %d", a.Animation().ModVal)
	}
}
