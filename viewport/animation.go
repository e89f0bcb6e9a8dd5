package viewport

import "time"

const (
	DefaultModVal = 17
	DefaultMulti  = 1
	DefaultStep   = 0.01
)

// FramePeriod is the interval between animation frames, 144 per second.
const FramePeriod = time.Second / 144

// Animation is the phase of the ripple program.
type Animation struct {
	Multi  float64
	ModVal int
	Step   float64
}

func NewAnimation() *Animation {
	return &Animation{
		Multi:  DefaultMulti,
		ModVal: DefaultModVal,
		Step:   DefaultStep,
	}
}

func (a *Animation) Tick() {
	a.Multi += a.Step
}

// Animator drives an Animation from a timer instead of user input.
type Animator struct {
	anim   *Animation
	render func(Animation)
}

func NewAnimator(anim *Animation, render func(Animation)) *Animator {
	return &Animator{
		anim:   anim,
		render: render,
	}
}

// Frame renders the current phase, then advances it.
func (a *Animator) Frame() {
	a.render(*a.anim)
	a.anim.Tick()
}

func (a *Animator) Animation() Animation {
	return *a.anim
}
