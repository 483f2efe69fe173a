// Package haptics is the feedback capability provider. The original app
// probes for native haptics; here the desktop notification center stands in,
// with a no-op engine when feedback is disabled or unavailable.
package haptics

import "github.com/gen2brain/beeep"

type Engine interface {
	LightTap()
	MilestoneThump()
	CompletionPulse()
}

// Detect picks the engine once at startup; callers never probe platforms
// themselves.
func Detect(enabled bool) Engine {
	if !enabled {
		return Noop{}
	}
	return desktop{}
}

type Noop struct{}

func (Noop) LightTap()        {}
func (Noop) MilestoneThump()  {}
func (Noop) CompletionPulse() {}

type desktop struct{}

// Per-tap feedback has no desktop analog worth a notification.
func (desktop) LightTap() {}

func (desktop) MilestoneThump() {
	_ = beeep.Notify("Wird", "Milestone reached, keep going", "")
}

func (desktop) CompletionPulse() {
	_ = beeep.Alert("Wird", "Recitation complete", "")
}

// ForCounter mirrors the tap feedback curve: completion outranks the
// every-tenth milestone, which outranks a plain tap.
func ForCounter(e Engine, current, target int) {
	switch {
	case current >= target:
		e.CompletionPulse()
	case current%10 == 0:
		e.MilestoneThump()
	default:
		e.LightTap()
	}
}
